// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Envelope is the common response wrapper of the Devontix API:
//
//	{"success": true, "message": "...", "data": {...}}
//
// Failed requests carry success=false and a human-readable message; the
// console shows that message verbatim next to the triggering form or list.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// ProjectList is the data of GET /projects.
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// ProjectItem is the data of POST/PUT /projects.
type ProjectItem struct {
	Project Project `json:"project"`
}

// TaskList is the data of GET /tasks.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}

// TaskItem is the data of POST/PUT /tasks.
type TaskItem struct {
	Task Task `json:"task"`
}

// UserList is the data of GET /users.
type UserList struct {
	Users []User `json:"users"`
}

// UserItem is the data of GET /auth/me and PATCH /users/:id/role.
type UserItem struct {
	User User `json:"user"`
}
