// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/devontix-console/internal/adapter"
	"github.com/MKhiriev/devontix-console/internal/app"
	"github.com/MKhiriev/devontix-console/internal/validators"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "input", err: &InputError{Message: "Please enter email and password"}, want: "Please enter email and password"},
		{name: "server message", err: fmt.Errorf("update: %w", adapter.NewResponseError(400, "Invalid status")), want: "Invalid status"},
		{name: "server without message", err: adapter.NewResponseError(500, ""), want: "fallback"},
		{name: "network", err: fmt.Errorf("get: %w: %w", adapter.ErrNetwork, errors.New("connection refused")), want: app.MsgNetworkUnavailable},
		{name: "not authenticated", err: ErrNotAuthenticated, want: app.MsgSessionExpired},
		{name: "forbidden area", err: fmt.Errorf("%w: x", ErrForbiddenArea), want: app.MsgAccessDenied},
		{name: "empty title", err: fmt.Errorf("create task: %w", validators.ErrEmptyTitle), want: app.MsgTitleRequired},
		{name: "no project", err: fmt.Errorf("create task: %w", validators.ErrEmptyProject), want: app.MsgProjectRequired},
		{name: "bad dates", err: validators.ErrInvalidDates, want: app.MsgInvalidDates},
		{name: "unknown enum", err: validators.ErrInvalidTaskStatus, want: "fallback"},
		{name: "other", err: errors.New("decode"), want: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "fallback"))
		})
	}
}
