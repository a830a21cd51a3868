// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/service"
	"github.com/MKhiriev/devontix-console/internal/tui"
	"github.com/MKhiriev/devontix-console/internal/workers"
)

type App struct {
	services   *service.ConsoleServices
	workers    *workers.Workers
	newProgram func(ctx context.Context) program

	logger *logger.Logger
}

// NewApp assembles the console runtime from its services, UI and workers.
func NewApp(services *service.ConsoleServices, ui *tui.TUI, w *workers.Workers, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil || w == nil {
		return nil, errors.New("client app: services, ui and workers are required")
	}

	return &App{
		services: services,
		workers:  w,
		newProgram: func(ctx context.Context) program {
			return ui.Program(ctx)
		},
		logger: logger,
	}, nil
}

// Run restores the session, then runs the UI with the workers alongside.
// A forced logout from any goroutine is delivered to the UI as
// [tui.SessionExpiredMsg].
func (a *App) Run(ctx context.Context) error {
	state := a.services.SessionService.Restore(ctx)
	a.logger.Info().Str("func", "App.Run").Str("state", state.String()).Msg("session restored")

	p := a.newProgram(ctx)

	// Send blocks until the event loop is running; never call it on the
	// notifying goroutine.
	unsubscribe := a.services.SessionService.Subscribe(func() {
		go p.Send(tui.SessionExpiredMsg{})
	})
	defer unsubscribe()

	a.workers.Start(ctx)
	defer a.workers.Stop()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run console ui: %w", err)
	}

	a.logger.Info().Str("func", "App.Run").Msg("console closed")
	return nil
}
