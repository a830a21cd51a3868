// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the authorization role of a Devontix account. The server assigns
// [RoleDeveloper] on registration; only an Admin can change it.
type Role string

const (
	// RoleAdmin grants the admin area: dashboards, project/task CRUD and
	// user role management.
	RoleAdmin Role = "Admin"

	// RoleDeveloper grants the developer area: own tasks and status changes.
	RoleDeveloper Role = "Developer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// HomeArea returns the console area a user with role r lands on after login.
// Unknown roles land on the login screen.
func (r Role) HomeArea() Area {
	switch r {
	case RoleAdmin:
		return AreaAdmin
	case RoleDeveloper:
		return AreaDeveloper
	default:
		return AreaLogin
	}
}

// Toggle returns the opposite role. It is used by the admin users tab to
// promote or demote an account with a single key press.
func (r Role) Toggle() Role {
	if r == RoleAdmin {
		return RoleDeveloper
	}
	return RoleAdmin
}

// User is an account as returned by GET /users and GET /auth/me.
type User struct {
	// ID is the server-side identifier (MongoDB-style "_id").
	ID string `json:"_id"`

	// Name is the display name.
	Name string `json:"name"`

	// Email is the login identifier.
	Email string `json:"email"`

	// Role is the account role.
	Role Role `json:"role"`

	// CreatedAt is the registration time.
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Developers returns the users whose role is [RoleDeveloper], preserving order.
func Developers(users []User) []User {
	devs := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role == RoleDeveloper {
			devs = append(devs, u)
		}
	}
	return devs
}

// CountByRole returns how many users hold each role.
func CountByRole(users []User) map[Role]int {
	counts := make(map[Role]int, 2)
	for _, u := range users {
		counts[u.Role]++
	}
	return counts
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register. The role is not sent:
// the server defaults new accounts to Developer.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the data part of a successful login response.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// RoleUpdate is the body of PATCH /users/:id/role.
type RoleUpdate struct {
	Role Role `json:"role"`
}
