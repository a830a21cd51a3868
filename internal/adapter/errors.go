// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrUnexpectedStatus covers non-2xx statuses without a dedicated sentinel.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrRequestFailed is returned when a 2xx response carries success=false.
	ErrRequestFailed = errors.New("request failed")

	// ErrNetwork is returned when no response was received at all.
	ErrNetwork = errors.New("server unreachable")

	// ErrDecodeResponse is returned when a response body cannot be decoded.
	ErrDecodeResponse = errors.New("cannot decode response")
)

// ResponseError is a failed API call that produced a response.
type ResponseError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Message is the envelope message, or the raw body when the response was
	// not an envelope.
	Message string

	kind error
}

// NewResponseError builds the error for a non-2xx response with status code
// and server message.
func NewResponseError(code int, message string) *ResponseError {
	return &ResponseError{StatusCode: code, Message: message, kind: statusSentinel(code)}
}

func (e *ResponseError) Error() string {
	kind := e.Unwrap()
	if e.Message == "" {
		return kind.Error()
	}
	return fmt.Sprintf("%s: %s", kind, e.Message)
}

func (e *ResponseError) Unwrap() error {
	if e.kind == nil {
		return statusSentinel(e.StatusCode)
	}
	return e.kind
}
