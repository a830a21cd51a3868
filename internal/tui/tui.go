// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/service"
	"github.com/MKhiriev/devontix-console/models"
)

// TUI builds the bubbletea program of the console.
type TUI struct {
	services  *service.ConsoleServices
	buildInfo models.BuildInfo
	logger    *logger.Logger
}

func New(services *service.ConsoleServices, buildInfo models.BuildInfo, logger *logger.Logger) *TUI {
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}
}

// Program returns a program rooted at [RootModel]. The caller runs it, and
// may Send [SessionExpiredMsg] to it from other goroutines.
func (t *TUI) Program(ctx context.Context) *tea.Program {
	root := NewRootModel(ctx, t.services.SessionService, t.services.SyncService, t.buildInfo, t.logger)
	return tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
}
