// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/devontix-console/internal/app"
	"github.com/MKhiriev/devontix-console/internal/service"
	"github.com/MKhiriev/devontix-console/models"
)

// DeveloperModel is the developer area: the personal dashboard and the
// tasks the server returns for the signed-in developer. Developers may only
// move a task through its statuses.
type DeveloperModel struct {
	ctx      context.Context
	sessions service.SessionService
	sync     service.SyncService
	now      func() time.Time

	// pending counts loads still in flight
	pending int
	spinner spinner.Model

	dashboard models.DevDashboard
	tasks     []models.Task
	cursor    int

	status string
	errMsg string
}

func NewDeveloperModel(ctx context.Context, sessions service.SessionService, sync service.SyncService) *DeveloperModel {
	return &DeveloperModel{
		ctx:      ctx,
		sessions: sessions,
		sync:     sync,
		now:      time.Now,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *DeveloperModel) Init() tea.Cmd {
	return m.startLoading()
}

func (m *DeveloperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dashboardLoadedMsg:
		m.loaded()
		if msg.err != nil {
			m.errMsg = service.UserMessage(msg.err, app.MsgLoadFailed)
			return m, nil
		}
		m.dashboard = msg.dev
		return m, nil

	case tasksLoadedMsg:
		m.loaded()
		if msg.err != nil {
			m.errMsg = service.UserMessage(msg.err, app.MsgLoadFailed)
			return m, nil
		}
		m.tasks = msg.tasks
		m.cursor = clampCursor(m.cursor, len(m.tasks))
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			m.errMsg = service.UserMessage(msg.err, msg.fallback)
			return m, nil
		}
		m.status = msg.status
		return m, m.startLoading()

	case logoutDoneMsg:
		return m, func() tea.Msg { return NavigateTo{Area: models.AreaLogin} }

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *DeveloperModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.logout):
		ctx, sessions := m.ctx, m.sessions
		return m, func() tea.Msg { return logoutDoneMsg{err: sessions.Logout(ctx)} }
	case key.Matches(msg, keys.up):
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case key.Matches(msg, keys.down):
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case key.Matches(msg, keys.refresh):
		m.sync.Invalidate(models.CollectionDevDashboard, models.CollectionTasks)
		return m, m.startLoading()
	case key.Matches(msg, keys.status):
		if m.cursor >= len(m.tasks) {
			return m, nil
		}
		return m, m.cmdCycleStatus(m.tasks[m.cursor])
	}
	return m, nil
}

func (m *DeveloperModel) loaded() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m *DeveloperModel) startLoading() tea.Cmd {
	ctx := m.ctx
	sync := m.sync

	m.pending = 2
	m.errMsg = ""

	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			d, err := sync.DevDashboard(ctx)
			return dashboardLoadedMsg{dev: d, err: err}
		},
		func() tea.Msg {
			tasks, err := sync.Tasks(ctx)
			return tasksLoadedMsg{tasks: tasks, err: err}
		},
	)
}

func (m *DeveloperModel) cmdCycleStatus(t models.Task) tea.Cmd {
	ctx := m.ctx
	sync := m.sync
	status := t.Status.Next()

	m.status = ""
	m.errMsg = ""

	return func() tea.Msg {
		if _, err := sync.UpdateTaskStatus(ctx, t.ID, status); err != nil {
			return mutationDoneMsg{err: err, fallback: app.MsgSaveFailed}
		}
		return mutationDoneMsg{status: fmt.Sprintf("%q moved to %s", t.Title, status)}
	}
}

func (m *DeveloperModel) View() string {
	var b strings.Builder

	if m.pending > 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...\n")
	} else {
		o := m.dashboard.Overview
		b.WriteString(countLine("Assigned projects", o.AssignedProjects))
		b.WriteString("\n")
		b.WriteString(countLine("Assigned tasks", o.AssignedTasks))
		b.WriteString("\n")
		b.WriteString(countLine("Overdue tasks", o.OverdueTasks))
		b.WriteString("\n")
		b.WriteString("By status: ")
		b.WriteString(breakdown(models.TaskStatuses, m.dashboard.Tasks.ByStatus))
		b.WriteString("\n\n")

		b.WriteString("My tasks\n")
		if len(m.tasks) == 0 {
			b.WriteString("No tasks assigned.\n")
		} else {
			b.WriteString(renderTable([]string{"Title", "Project", "Assignee", "Status", "Priority", "Due"}, taskRows(m.tasks, m.now()), m.cursor))
			b.WriteString("\n")
		}
	}

	renderMessages(&b, m.status, m.errMsg)

	title := "DEVONTIX DEVELOPER"
	if sess, ok := m.sessions.Current(); ok {
		title += " · " + sess.Name
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), "↑/↓: select │ s: next status │ r: refresh │ L: logout │ q: quit")
}
