// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/devontix-console/models"
)

// NavigateTo switches the console to Area. Notice is shown on the target
// screen; it is how the login screen learns why it was opened.
type NavigateTo struct {
	Area   models.Area
	Notice string
}

// SessionExpiredMsg is sent to the program when the session was dropped
// outside the UI (server 401 or the expiry job).
type SessionExpiredMsg struct{}

type loginDoneMsg struct {
	session models.Session
	err     error
}

type registerDoneMsg struct {
	notice string
	err    error
}

type logoutDoneMsg struct {
	err error
}

type dashboardLoadedMsg struct {
	admin models.AdminDashboard
	dev   models.DevDashboard
	err   error
}

type projectsLoadedMsg struct {
	projects []models.Project
	err      error
}

type tasksLoadedMsg struct {
	tasks []models.Task
	err   error
}

type usersLoadedMsg struct {
	users []models.User
	err   error
}

// mutationDoneMsg reports a finished create, update or delete.
type mutationDoneMsg struct {
	status string
	err    error
	// fallback is the message shown when the server gave none.
	fallback string
	// home is set when the change moved the signed-in user to another area.
	home models.Area
}

type formOptionsLoadedMsg struct {
	projects   []models.Project
	developers []models.User
	err        error
}

type copiedMsg struct {
	email string
	err   error
}
