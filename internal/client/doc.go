// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive console runtime.
//
// It restores the persisted session, wires forced logouts into the terminal
// UI and runs the background workers for the lifetime of the UI.
package client
