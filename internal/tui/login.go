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

// LoginModel is the login screen. On success it navigates to the home area
// of the new session's role.
type LoginModel struct {
	ctx      context.Context
	sessions service.SessionService

	form       fieldSet
	submitting bool
	notice     string
	errMsg     string
}

// NewLoginModel creates the login form. notice is shown above the form,
// e.g. why the previous session ended.
func NewLoginModel(ctx context.Context, sessions service.SessionService, notice string) *LoginModel {
	return &LoginModel{
		ctx:      ctx,
		sessions: sessions,
		form: newFieldSet(
			textField("Email", "email", 254),
			passwordField("Password"),
		),
		notice: notice,
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginDoneMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = service.UserMessage(result.err, app.MsgLoginFailed)
			return m, nil
		}
		area := result.session.Role.HomeArea()
		return m, func() tea.Msg { return NavigateTo{Area: area} }
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.register):
			return m, func() tea.Msg { return NavigateTo{Area: models.AreaRegister} }
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
			m.notice = ""
			m.submitting = true
			return m, m.cmdLogin(m.form.value(0), m.form.value(1))
		}
	}

	return m, m.form.update(msg)
}

func (m *LoginModel) View() string {
	var b strings.Builder

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.view())

	if m.submitting {
		b.WriteString("\n[Signing in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}

	renderMessages(&b, "", m.errMsg)

	return renderPage("DEVONTIX LOGIN", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: sign in │ ctrl+r: register")
}

func (m *LoginModel) cmdLogin(email, password string) tea.Cmd {
	ctx := m.ctx
	sessions := m.sessions

	return func() tea.Msg {
		sess, err := sessions.Login(ctx, email, password)
		return loginDoneMsg{session: sess, err: err}
	}
}
