// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/devontix-console/internal/app"
	"github.com/MKhiriev/devontix-console/internal/service"
	"github.com/MKhiriev/devontix-console/models"
)

// RegisterModel is the account creation screen. A registered account is not
// signed in: the screen returns to login with a notice.
type RegisterModel struct {
	ctx      context.Context
	sessions service.SessionService

	form       fieldSet
	submitting bool
	errMsg     string
}

func NewRegisterModel(ctx context.Context, sessions service.SessionService) *RegisterModel {
	return &RegisterModel{
		ctx:      ctx,
		sessions: sessions,
		form: newFieldSet(
			textField("Name", "full name", 100),
			textField("Email", "email", 254),
			passwordField("Password"),
		),
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(registerDoneMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = service.UserMessage(result.err, app.MsgRegistrationFailed)
			return m, nil
		}
		notice := result.notice
		return m, func() tea.Msg { return NavigateTo{Area: models.AreaLogin, Notice: notice} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			return m, func() tea.Msg { return NavigateTo{Area: models.AreaLogin} }
		case key.Matches(keyMsg, keys.tab):
			m.form.next()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.form.prev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.submitting {
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(m.form.value(0), m.form.value(1), m.form.value(2))
		}
	}

	return m, m.form.update(msg)
}

func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Registering...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}

	renderMessages(&b, "", m.errMsg)

	return renderPage("DEVONTIX REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: register")
}

func (m *RegisterModel) cmdRegister(name, email, password string) tea.Cmd {
	ctx := m.ctx
	sessions := m.sessions

	return func() tea.Msg {
		notice, err := sessions.Register(ctx, name, email, password)
		return registerDoneMsg{notice: notice, err: err}
	}
}
