// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the console's core: the session service that
// owns the authenticated identity and the sync service that fetches, caches
// and invalidates the API collections shown on screen.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/devontix-console/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionService owns the single session of the console user. It is the only
// writer of the persisted session and of the adapter's bearer token.
type SessionService interface {
	// Restore loads the persisted session once per application run. An
	// expired session is dropped without a request; otherwise the token is
	// validated with the server and the identity refreshed. Any failure
	// leaves the console unauthenticated. Later calls return the state the
	// first call established.
	Restore(ctx context.Context) models.SessionState

	// Login authenticates with email and password, persists the session and
	// returns it. On failure the current session is left untouched.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// Register creates a Developer account and returns the notice to show on
	// the login screen. It never logs in.
	Register(ctx context.Context, name, email, password string) (string, error)

	// Logout drops the session everywhere. Calling it without a session is
	// not an error.
	Logout(ctx context.Context) error

	// UpdateUser replaces the identity part of the current session.
	UpdateUser(ctx context.Context, user models.User) error

	// Guard reports whether area may be shown: [ErrNotAuthenticated] without
	// a session, [ErrForbiddenArea] when the role does not match.
	Guard(area models.Area) error

	// HandleUnauthorized is called by the transport when the server rejects
	// the token. It clears the session and notifies subscribers.
	HandleUnauthorized()

	// ExpireIfDue performs the forced logout when the current session has
	// passed its expiry at now. It reports whether it did.
	ExpireIfDue(ctx context.Context, now time.Time) bool

	// Subscribe registers fn to be called after every forced logout. The
	// returned func removes it.
	Subscribe(fn func()) (unsubscribe func())

	State() models.SessionState
	Current() (models.Session, bool)
}

// SyncService reads API collections through the collection cache and runs
// mutations that invalidate it.
type SyncService interface {
	Projects(ctx context.Context) ([]models.Project, error)
	Tasks(ctx context.Context) ([]models.Task, error)
	Users(ctx context.Context) ([]models.User, error)

	// Developers returns the cached users whose role is Developer.
	Developers(ctx context.Context) ([]models.User, error)

	AdminDashboard(ctx context.Context) (models.AdminDashboard, error)
	DevDashboard(ctx context.Context) (models.DevDashboard, error)

	CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error)
	UpdateProject(ctx context.Context, id string, in models.ProjectInput) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	CreateTask(ctx context.Context, in models.TaskInput) (models.Task, error)
	UpdateTask(ctx context.Context, id string, in models.TaskInput) (models.Task, error)

	// UpdateTaskStatus sends only the status, which is all a Developer may
	// change.
	UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	UpdateUserRole(ctx context.Context, id string, role models.Role) (models.User, error)

	// Invalidate drops keys so their next read re-fetches.
	Invalidate(keys ...models.CollectionKey)

	// Reset drops every cached collection.
	Reset()
}

// SessionExpiryJob periodically drops the session once it has expired.
type SessionExpiryJob interface {
	// Start launches the background check, replacing a running one.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the check and blocks until it has exited.
	Stop()
}
