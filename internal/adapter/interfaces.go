// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the console and the
// Devontix REST API.
//
// The primary abstraction is [APIAdapter], which decouples the service layer
// from HTTP. The package ships a resty-based implementation
// ([NewHTTPAPIAdapter]) that attaches the bearer token and a request id to
// every call and reports 401 responses to a registered handler so the session
// can be torn down from a single place.
//
// Non-2xx responses are returned as [*ResponseError] values wrapping the
// sentinels defined in errors.go, so callers can use [errors.Is] for status
// checks (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401) and
// [errors.As] to read the server message.
package adapter

import (
	"context"

	"github.com/MKhiriev/devontix-console/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/api_adapter_mock.go -package=mock

// APIAdapter defines communication with the Devontix API.
type APIAdapter interface {
	// SetToken stores the bearer token attached to every subsequent request.
	// An empty token removes the header.
	SetToken(token string)

	// Token returns the bearer token currently in use.
	Token() string

	// SetUnauthorizedHandler registers fn to be called whenever a request
	// other than login receives 401. fn runs before the failing call returns.
	SetUnauthorizedHandler(fn func())

	// Login exchanges credentials for a user record and token via
	// POST /auth/login. The token is not installed automatically.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)

	// Register creates a Developer account via POST /auth/register.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Me returns the user owning the current token via GET /auth/me.
	Me(ctx context.Context) (models.User, error)

	// Projects lists projects visible to the caller (GET /projects).
	Projects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error)
	UpdateProject(ctx context.Context, id string, in models.ProjectInput) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	// Tasks lists tasks visible to the caller (GET /tasks). Developers only
	// see tasks assigned to them.
	Tasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, in models.TaskInput) (models.Task, error)
	UpdateTask(ctx context.Context, id string, in models.TaskInput) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Users lists every account (GET /users, Admin only).
	Users(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id string, role models.Role) (models.User, error)

	AdminDashboard(ctx context.Context) (models.AdminDashboard, error)
	DevDashboard(ctx context.Context) (models.DevDashboard, error)
}
