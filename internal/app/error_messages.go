// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by the console
// services and screens.
//
// Server-provided messages are shown verbatim when present; the Msg*
// constants below are the fallbacks and the console's own notices. Keeping
// them in one place ensures consistent wording across screens.
package app

const (
	// MsgLoginFailed is shown when login fails without a server message.
	MsgLoginFailed = "Login failed. Please try again."

	// MsgRegistrationFailed is shown when registration fails without a
	// server message.
	MsgRegistrationFailed = "Registration failed. Please try again."

	// MsgRegistrationSuccessful is shown on the login screen after a
	// successful registration.
	MsgRegistrationSuccessful = "Registration successful! Please login."

	// MsgSessionExpired is shown when the server rejected the token or the
	// local session ran out.
	MsgSessionExpired = "Session expired. Please log in again."

	// MsgAccessDenied is shown when the role does not match the area.
	MsgAccessDenied = "Access denied for your role. Please log in again."

	// MsgNetworkUnavailable is shown when the API could not be reached.
	MsgNetworkUnavailable = "Network unavailable or server is down"

	// MsgEmptyCredentials is shown when email or password is blank.
	MsgEmptyCredentials = "Please enter email and password"

	// MsgEmptyRegistration is shown when a registration field is blank.
	MsgEmptyRegistration = "Please fill in name, email and password"

	// MsgLoadFailed is the fallback for a failed collection fetch.
	MsgLoadFailed = "Failed to load data"

	// MsgSaveFailed is the fallback for a failed create or update.
	MsgSaveFailed = "Failed to save changes"

	// MsgDeleteFailed is the fallback for a failed delete.
	MsgDeleteFailed = "Failed to delete"

	// MsgRoleUpdateFailed is the fallback for a failed role change.
	MsgRoleUpdateFailed = "Failed to update user role"

	// MsgTitleRequired is shown when a project or task form has no title.
	MsgTitleRequired = "Title is required"

	// MsgProjectRequired is shown when a task form has no project.
	MsgProjectRequired = "Select a project for the task"

	// MsgInvalidDueDate is shown when a due date is not YYYY-MM-DD.
	MsgInvalidDueDate = "Due date must be in YYYY-MM-DD format"

	// MsgInvalidDates is shown when a due date precedes the start date.
	MsgInvalidDates = "Due date cannot be before start date"

	// MsgClipboardFailed is shown when copying to the clipboard fails.
	MsgClipboardFailed = "Clipboard unavailable"
)
