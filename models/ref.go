// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// Ref is a reference to another document. The API populates references
// (project, assignee, creator) with a few fields of the target, but the same
// attribute may also arrive as a bare id string.
type Ref struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts either a populated object or a plain id string.
func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}

	type plain Ref
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// Label returns the most descriptive non-empty field of the reference.
func (r *Ref) Label() string {
	switch {
	case r == nil:
		return ""
	case r.Name != "":
		return r.Name
	case r.Title != "":
		return r.Title
	default:
		return r.ID
	}
}

// RefID returns the id of r, or "" for a nil reference.
func RefID(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.ID
}
