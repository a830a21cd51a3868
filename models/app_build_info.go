// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// BuildInfo carries build-time metadata injected with -ldflags. Empty values
// are replaced by "N/A" so the version window never shows blank lines.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewBuildInfo constructs [BuildInfo] from linker-provided values.
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orNA(version),
		Date:    orNA(date),
		Commit:  orNA(commit),
	}
}

func orNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
