// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ConsoleConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid API adapter settings
	// (for example, missing address or negative timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an in-memory DSN that cannot persist).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSessionConfigs indicates a non-positive session TTL.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidWorkerConfigs indicates invalid background job settings
	// (for example, zero check interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
)
