// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/devontix-console/models"
)

const (
	sessionsTable = "sessions"

	// The console holds at most one session; its row always has this id.
	sessionRowID = 1
)

var sessionColumns = []string{
	"user_id",
	"name",
	"email",
	"role",
	"token",
	"created_at",
	"expires_at",
}

func buildSaveSessionQuery(s models.Session) (string, []any, error) {
	return sq.Replace(sessionsTable).
		Columns(append([]string{"id"}, sessionColumns...)...).
		Values(
			sessionRowID,
			s.UserID,
			s.Name,
			s.Email,
			string(s.Role),
			s.Token,
			unixOrZero(s.CreatedAt),
			unixOrZero(s.ExpiresAt),
		).
		ToSql()
}

func buildGetSessionQuery() (string, []any, error) {
	return sq.Select(sessionColumns...).
		From(sessionsTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
}

func buildDeleteSessionQuery() (string, []any, error) {
	return sq.Delete(sessionsTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
}
