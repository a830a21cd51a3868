// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/models"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	l := logger.Nop()
	repo := &sessionRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func testSession() models.Session {
	return models.Session{
		UserID:    "u-1",
		Name:      "Ada",
		Email:     "ada@devontix.io",
		Role:      models.RoleAdmin,
		Token:     "tok",
		CreatedAt: time.Unix(1_700_000_000, 0),
		ExpiresAt: time.Unix(1_700_604_800, 0),
	}
}

func TestSaveSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	s := testSession()
	mock.ExpectExec(regexp.QuoteMeta("REPLACE INTO sessions")).
		WithArgs(1, s.UserID, s.Name, s.Email, string(models.RoleAdmin), s.Token, s.CreatedAt.Unix(), s.ExpiresAt.Unix()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SaveSession(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSession_ZeroTimesStoredAsZero(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	s := testSession()
	s.CreatedAt = time.Time{}
	s.ExpiresAt = time.Time{}
	mock.ExpectExec(regexp.QuoteMeta("REPLACE INTO sessions")).
		WithArgs(1, s.UserID, s.Name, s.Email, string(models.RoleAdmin), s.Token, int64(0), int64(0)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SaveSession(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSession_ExecError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("REPLACE INTO sessions")).
		WillReturnError(errors.New("disk I/O error"))

	err := repo.SaveSession(context.Background(), testSession())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestGetSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	want := testSession()
	rows := sqlmock.NewRows(sessionColumns).
		AddRow(want.UserID, want.Name, want.Email, string(models.RoleAdmin), want.Token, want.CreatedAt.Unix(), want.ExpiresAt.Unix())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, name, email, role, token, created_at, expires_at FROM sessions WHERE id = ?")).
		WithArgs(1).
		WillReturnRows(rows)

	got, err := repo.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.Role, got.Role)
	assert.Equal(t, want.Token, got.Token)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
}

func TestGetSession_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("FROM sessions").WillReturnRows(sqlmock.NewRows(sessionColumns))

	_, err := repo.GetSession(context.Background())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSession_ScanError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	// wrong shape
	mock.ExpectQuery("FROM sessions").WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u-1"))

	_, err := repo.GetSession(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, db := newTestSessionRepo(t)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE id = ?")).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.DeleteSession(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing saved", func(t *testing.T) {
		repo, mock, db := newTestSessionRepo(t)
		defer db.Close()

		mock.ExpectExec("DELETE FROM sessions").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.DeleteSession(context.Background()))
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, db := newTestSessionRepo(t)
		defer db.Close()

		mock.ExpectExec("DELETE FROM sessions").WillReturnError(errors.New("locked"))

		assert.ErrorIs(t, repo.DeleteSession(context.Background()), ErrExecutingStatement)
	})
}

func TestSessionRepository_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "console.db")

	db, err := NewConnectSQLite(ctx, dsn, logger.Nop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate())

	repo := NewSessionRepository(db, logger.Nop())

	_, err = repo.GetSession(ctx)
	require.ErrorIs(t, err, ErrSessionNotFound)

	first := testSession()
	require.NoError(t, repo.SaveSession(ctx, first))

	second := first
	second.Token = "tok-2"
	second.Role = models.RoleDeveloper
	require.NoError(t, repo.SaveSession(ctx, second))

	got, err := repo.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got.Token)
	assert.Equal(t, models.RoleDeveloper, got.Role)

	require.NoError(t, repo.DeleteSession(ctx))
	_, err = repo.GetSession(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
