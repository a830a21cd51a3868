// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/devontix-console/internal/config"
	"github.com/MKhiriev/devontix-console/internal/logger"
)

// ConsoleStorages groups the local stores used by the console services.
type ConsoleStorages struct {
	SessionRepository SessionRepository
	Collections       *CollectionCache

	db *DB
}

// NewConsoleStorages opens the local database, applies migrations and builds
// the repositories on top of it.
func NewConsoleStorages(ctx context.Context, cfg config.ConsoleStorage, log *logger.Logger) (*ConsoleStorages, error) {
	db, err := NewConnectSQLite(ctx, cfg.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to local database: %w", err)
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewConsoleStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, err
	}

	return &ConsoleStorages{
		SessionRepository: NewSessionRepository(db, log),
		Collections:       NewCollectionCache(),
		db:                db,
	}, nil
}

// Close releases the local database.
func (s *ConsoleStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
