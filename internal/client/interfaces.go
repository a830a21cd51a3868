// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Client defines the minimal lifecycle contract for runnable console
// applications.
type Client interface {
	// Run starts the console and blocks until the user quits or ctx is
	// cancelled.
	Run(ctx context.Context) error
}

// program is the part of [tea.Program] the runtime drives.
type program interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}
