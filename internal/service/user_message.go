// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/devontix-console/internal/adapter"
	"github.com/MKhiriev/devontix-console/internal/app"
	"github.com/MKhiriev/devontix-console/internal/validators"
)

// UserMessage returns the text to show for err: the server message when the
// API sent one, a fixed notice for local and network failures, fallback
// otherwise. A nil err yields "".
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}

	var respErr *adapter.ResponseError
	if errors.As(err, &respErr) && respErr.Message != "" {
		return respErr.Message
	}

	switch {
	case errors.Is(err, adapter.ErrNetwork):
		return app.MsgNetworkUnavailable
	case errors.Is(err, ErrNotAuthenticated):
		return app.MsgSessionExpired
	case errors.Is(err, ErrForbiddenArea):
		return app.MsgAccessDenied
	case errors.Is(err, validators.ErrEmptyTitle):
		return app.MsgTitleRequired
	case errors.Is(err, validators.ErrEmptyProject):
		return app.MsgProjectRequired
	case errors.Is(err, validators.ErrInvalidDates):
		return app.MsgInvalidDates
	}

	return fallback
}
