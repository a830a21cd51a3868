// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the client-held record of the authenticated user and their
// credential. It is owned by the session service and persisted in the local
// SQLite store so that it survives console restarts.
type Session struct {
	UserID string
	Name   string
	Email  string
	Role   Role
	Token  string

	// CreatedAt is when the session was established by a successful login.
	CreatedAt time.Time

	// ExpiresAt is the moment after which the session is treated as absent
	// even if the server has not rejected the token yet.
	ExpiresAt time.Time
}

// NewSession builds a session from a login result.
func NewSession(user User, token string, createdAt, expiresAt time.Time) Session {
	return Session{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Token:     token,
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}
}

// Expired reports whether the session is past its expiry at now.
// A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// User returns the identity part of the session.
func (s Session) User() User {
	return User{ID: s.UserID, Name: s.Name, Email: s.Email, Role: s.Role}
}

// WithUser returns a copy of s with the identity replaced by u.
// Token and timestamps are kept.
func (s Session) WithUser(u User) Session {
	s.UserID = u.ID
	s.Name = u.Name
	s.Email = u.Email
	s.Role = u.Role
	return s
}

// SessionState is the coarse authentication state exposed to the console.
type SessionState int

const (
	// SessionLoading means the persisted session has not been restored yet.
	SessionLoading SessionState = iota
	// SessionAuthenticated means a valid session is held.
	SessionAuthenticated
	// SessionUnauthenticated means no session is held.
	SessionUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionAuthenticated:
		return "authenticated"
	case SessionUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Area is a console section guarded by the session service.
type Area string

const (
	AreaLogin     Area = "login"
	AreaRegister  Area = "register"
	AreaAdmin     Area = "admin"
	AreaDeveloper Area = "developer"
)

// RequiredRole returns the role an area demands and whether the area is
// protected at all.
func (a Area) RequiredRole() (Role, bool) {
	switch a {
	case AreaAdmin:
		return RoleAdmin, true
	case AreaDeveloper:
		return RoleDeveloper, true
	default:
		return "", false
	}
}
