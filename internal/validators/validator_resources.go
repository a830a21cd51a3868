// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"slices"
	"strings"

	"github.com/MKhiriev/devontix-console/models"
)

const (
	FieldTitle    = "title"
	FieldStatus   = "status"
	FieldPriority = "priority"
	FieldProject  = "project"
	FieldDates    = "dates"
	FieldRole     = "role"

	// FieldStatusChange requires a status, unlike FieldStatus which accepts
	// an empty one.
	FieldStatusChange = "status_change"
)

type ResourceValidator struct {
}

func NewResourceValidator() Validator {
	return &ResourceValidator{}
}

func (v *ResourceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ProjectInput:
		return v.validateProjectInput(ctx, value, fields...)
	case *models.ProjectInput:
		return v.validateProjectInput(ctx, *value, fields...)

	case models.TaskInput:
		return v.validateTaskInput(ctx, value, fields...)
	case *models.TaskInput:
		return v.validateTaskInput(ctx, *value, fields...)

	case models.RoleUpdate:
		return v.validateRoleUpdate(ctx, value, fields...)
	case *models.RoleUpdate:
		return v.validateRoleUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// optional enum values may be left empty; the server applies its default
func validEnum[T comparable](allowed []T, v T) bool {
	var zero T
	return v == zero || slices.Contains(allowed, v)
}

func (v *ResourceValidator) validateProjectInput(_ context.Context, in models.ProjectInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldStatus, FieldDates}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(in.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldStatus:
			if !validEnum(models.ProjectStatuses, in.Status) {
				return ErrInvalidProjectStatus
			}
		case FieldDates:
			if in.StartDate != nil && in.DueDate != nil && in.DueDate.Before(*in.StartDate) {
				return ErrInvalidDates
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ResourceValidator) validateTaskInput(_ context.Context, in models.TaskInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldProject, FieldStatus, FieldPriority}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(in.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldProject:
			if strings.TrimSpace(in.Project) == "" {
				return ErrEmptyProject
			}
		case FieldStatus:
			if !validEnum(models.TaskStatuses, in.Status) {
				return ErrInvalidTaskStatus
			}
		case FieldStatusChange:
			if in.Status == "" || !validEnum(models.TaskStatuses, in.Status) {
				return ErrInvalidTaskStatus
			}
		case FieldPriority:
			if !validEnum(models.TaskPriorities, in.Priority) {
				return ErrInvalidTaskPriority
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ResourceValidator) validateRoleUpdate(_ context.Context, in models.RoleUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldRole:
			if !in.Role.Valid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
