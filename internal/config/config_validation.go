// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"

	"github.com/rs/zerolog"
)

// validate checks the merged [StructuredConfig]. Field-level rules live in
// [ConsoleConfig.validate]; here only values that cannot be merged sensibly
// are rejected.
func (cfg *StructuredConfig) validate() error {
	if cfg.API.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}
	return nil
}

func (cfg *ConsoleConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Session.TTL <= 0 {
		return ErrInvalidSessionConfigs
	}

	if cfg.Workers.SessionCheckInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return ErrInvalidLogConfigs
	}

	return nil
}
