// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/models"
)

type sessionRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSessionRepository returns a [SessionRepository] backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{db: db, logger: logger}
}

func (r *sessionRepository) SaveSession(ctx context.Context, s models.Session) error {
	query, args, err := buildSaveSessionQuery(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.SaveSession").
			Str("user_id", s.UserID).
			Msg("failed to save session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *sessionRepository) GetSession(ctx context.Context) (models.Session, error) {
	query, args, err := buildGetSessionQuery()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		s         models.Session
		role      string
		createdAt int64
		expiresAt int64
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.UserID,
		&s.Name,
		&s.Email,
		&role,
		&s.Token,
		&createdAt,
		&expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.GetSession").
			Msg("failed to load session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	s.Role = models.Role(role)
	s.CreatedAt = timeOrZero(createdAt)
	s.ExpiresAt = timeOrZero(expiresAt)

	return s, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context) error {
	query, args, err := buildDeleteSessionQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "sessionRepository.DeleteSession").
			Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func timeOrZero(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
