// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store holds the console's local state: the SQLite-backed session
// repository that lets a login survive restarts, and the in-memory cache of
// API collections used by the data synchronization layer.
package store

import (
	"context"

	"github.com/MKhiriev/devontix-console/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SessionRepository persists the single session of the console user.
type SessionRepository interface {
	// SaveSession stores s, replacing any previously saved session.
	SaveSession(ctx context.Context, s models.Session) error

	// GetSession loads the saved session. Returns [ErrSessionNotFound] when
	// nothing is saved.
	GetSession(ctx context.Context) (models.Session, error)

	// DeleteSession removes the saved session. Deleting when nothing is
	// saved is not an error.
	DeleteSession(ctx context.Context) error
}
