// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/devontix-console/internal/app"
	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/service"
	"github.com/MKhiriev/devontix-console/models"
)

// RootModel is the console router:
// 1) keeps the active area
// 2) handles global ctrl+c and the build info window
// 3) guards every NavigateTo through the session service
// 4) delegates all other messages to the active area
type RootModel struct {
	ctx      context.Context
	sessions service.SessionService
	sync     service.SyncService

	area    models.Area
	current tea.Model

	buildInfo     models.BuildInfo
	showBuildInfo bool

	logger *logger.Logger
}

// NewRootModel opens the home area of the current session, or the login
// screen when no session is held. Restore must have run before.
func NewRootModel(ctx context.Context, sessions service.SessionService, sync service.SyncService, buildInfo models.BuildInfo, log *logger.Logger) RootModel {
	r := RootModel{
		ctx:       ctx,
		sessions:  sessions,
		sync:      sync,
		buildInfo: buildInfo,
		logger:    log,
	}

	start := models.AreaLogin
	if sess, ok := sessions.Current(); ok {
		start = sess.Role.HomeArea()
	}
	r.open(start, "")

	return r
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}
		if key.Matches(msg, keys.version) {
			r.showBuildInfo = !r.showBuildInfo
			return r, nil
		}
		if r.showBuildInfo {
			if key.Matches(msg, keys.esc) {
				r.showBuildInfo = false
			}
			return r, nil
		}

	case NavigateTo:
		r.showBuildInfo = false
		cmd := r.open(msg.Area, msg.Notice)
		return r, cmd

	case SessionExpiredMsg:
		r.showBuildInfo = false
		cmd := r.open(models.AreaLogin, app.MsgSessionExpired)
		return r, cmd
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.current == nil {
		return renderPage("DEVONTIX", "", "")
	}
	return r.current.View()
}

// Area returns the active area.
func (r RootModel) Area() models.Area {
	return r.area
}

// open switches to area. Protected areas the session cannot enter fall back
// to the login screen with the reason as notice.
func (r *RootModel) open(area models.Area, notice string) tea.Cmd {
	if err := r.sessions.Guard(area); err != nil {
		r.logger.Debug().Err(err).Str("func", "RootModel.open").Str("area", string(area)).Msg("area guarded")
		notice = service.UserMessage(err, app.MsgSessionExpired)
		area = models.AreaLogin
	}

	switch area {
	case models.AreaAdmin:
		r.current = NewAdminModel(r.ctx, r.sessions, r.sync)
	case models.AreaDeveloper:
		r.current = NewDeveloperModel(r.ctx, r.sessions, r.sync)
	case models.AreaRegister:
		r.current = NewRegisterModel(r.ctx, r.sessions)
	default:
		area = models.AreaLogin
		r.current = NewLoginModel(r.ctx, r.sessions, notice)
	}
	r.area = area

	return r.current.Init()
}
