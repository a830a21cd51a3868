// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrNotAuthenticated is returned by Guard when no session is held.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrForbiddenArea is returned by Guard when the session role does not
	// match the area.
	ErrForbiddenArea = errors.New("area not allowed for role")

	// ErrUnknownRole is returned by Login when the server reports a role the
	// console has no area for.
	ErrUnknownRole = errors.New("unknown user role")
)

// InputError is a validation failure detected before any request was sent.
// Its message is meant for the user.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}
