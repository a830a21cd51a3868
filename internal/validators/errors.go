// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTitle           = errors.New("title is required")
	ErrEmptyProject         = errors.New("project is required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidDates         = errors.New("due date is before start date")
)
