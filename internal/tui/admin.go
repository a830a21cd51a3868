// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/devontix-console/internal/app"
	"github.com/MKhiriev/devontix-console/internal/service"
	"github.com/MKhiriev/devontix-console/models"
)

type adminTab int

const (
	tabDashboard adminTab = iota
	tabProjects
	tabTasks
	tabUsers
)

var adminTabNames = []string{"Dashboard", "Projects", "Tasks", "Users"}

func (t adminTab) collection() models.CollectionKey {
	switch t {
	case tabProjects:
		return models.CollectionProjects
	case tabTasks:
		return models.CollectionTasks
	case tabUsers:
		return models.CollectionUsers
	default:
		return models.CollectionAdminDashboard
	}
}

// pendingDelete is a delete waiting for y/n.
type pendingDelete struct {
	label string
	run   tea.Cmd
}

// AdminModel is the admin area: dashboard, projects, tasks and users tabs.
// Every read goes through the sync service; a failed request leaves the
// shown data as it was and reports the error inline.
type AdminModel struct {
	ctx      context.Context
	sessions service.SessionService
	sync     service.SyncService
	now      func() time.Time

	tab     adminTab
	cursor  int
	loading bool
	spinner spinner.Model

	dashboard models.AdminDashboard
	projects  []models.Project
	tasks     []models.Task
	users     []models.User
	filter    models.TaskFilter

	form       *createForm
	submitting bool
	confirm    *pendingDelete

	status string
	errMsg string
}

func NewAdminModel(ctx context.Context, sessions service.SessionService, sync service.SyncService) *AdminModel {
	return &AdminModel{
		ctx:      ctx,
		sessions: sessions,
		sync:     sync,
		now:      time.Now,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *AdminModel) Init() tea.Cmd {
	return m.startLoading()
}

func (m *AdminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dashboardLoadedMsg:
		// a tab left before its load finished
		if m.tab != tabDashboard {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = service.UserMessage(msg.err, app.MsgLoadFailed)
			return m, nil
		}
		m.dashboard = msg.admin
		return m, nil

	case projectsLoadedMsg:
		if m.tab != tabProjects {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = service.UserMessage(msg.err, app.MsgLoadFailed)
			return m, nil
		}
		m.projects = msg.projects
		m.cursor = clampCursor(m.cursor, m.rowCount())
		return m, nil

	case tasksLoadedMsg:
		if m.tab != tabTasks {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = service.UserMessage(msg.err, app.MsgLoadFailed)
			return m, nil
		}
		m.tasks = msg.tasks
		m.cursor = clampCursor(m.cursor, m.rowCount())
		return m, nil

	case usersLoadedMsg:
		if m.tab != tabUsers {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = service.UserMessage(msg.err, app.MsgLoadFailed)
			return m, nil
		}
		m.users = msg.users
		m.cursor = clampCursor(m.cursor, m.rowCount())
		return m, nil

	case formOptionsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = service.UserMessage(msg.err, app.MsgLoadFailed)
			return m, nil
		}
		if m.tab == tabTasks {
			m.form = newTaskForm(msg.projects, msg.developers)
		} else {
			m.form = newProjectForm(msg.developers)
		}
		return m, nil

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = app.MsgClipboardFailed
			return m, nil
		}
		m.status = "Copied " + msg.email
		return m, nil

	case logoutDoneMsg:
		return m, func() tea.Msg { return NavigateTo{Area: models.AreaLogin} }

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *AdminModel) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		if m.form != nil {
			m.form.errMsg = service.UserMessage(msg.err, msg.fallback)
			return m, nil
		}
		m.errMsg = service.UserMessage(msg.err, msg.fallback)
		return m, nil
	}

	m.form = nil
	m.status = msg.status
	if msg.home != "" && msg.home != models.AreaAdmin {
		home := msg.home
		return m, func() tea.Msg { return NavigateTo{Area: home} }
	}
	return m, m.startLoading()
}

func (m *AdminModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.logout):
		return m, m.cmdLogout()
	case key.Matches(msg, keys.tab), key.Matches(msg, keys.right):
		return m, m.switchTab((m.tab + 1) % adminTab(len(adminTabNames)))
	case key.Matches(msg, keys.backtab), key.Matches(msg, keys.left):
		return m, m.switchTab((m.tab + adminTab(len(adminTabNames)) - 1) % adminTab(len(adminTabNames)))
	case key.Matches(msg, keys.up):
		m.cursor = clampCursor(m.cursor-1, m.rowCount())
		return m, nil
	case key.Matches(msg, keys.down):
		m.cursor = clampCursor(m.cursor+1, m.rowCount())
		return m, nil
	case key.Matches(msg, keys.refresh):
		m.sync.Invalidate(m.tab.collection())
		return m, m.startLoading()
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '4' {
		return m, m.switchTab(adminTab(s[0] - '1'))
	}

	switch m.tab {
	case tabProjects:
		return m, m.projectKeys(msg)
	case tabTasks:
		return m, m.taskKeys(msg)
	case tabUsers:
		return m, m.userKeys(msg)
	}
	return m, nil
}

func (m *AdminModel) projectKeys(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.newItem) {
		return m.openForm()
	}

	p, ok := m.selectedProject()
	if !ok {
		return nil
	}

	switch {
	case key.Matches(msg, keys.status):
		in := p.Input()
		in.Status = p.Status.Next()
		return m.cmdMutate("Project status set to "+string(in.Status), app.MsgSaveFailed,
			func(ctx context.Context) error {
				_, err := m.sync.UpdateProject(ctx, p.ID, in)
				return err
			})
	case key.Matches(msg, keys.delete):
		m.confirm = &pendingDelete{
			label: p.Title,
			run: m.cmdMutate("Project deleted", app.MsgDeleteFailed,
				func(ctx context.Context) error {
					return m.sync.DeleteProject(ctx, p.ID)
				}),
		}
	}
	return nil
}

func (m *AdminModel) taskKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.newItem):
		return m.openForm()
	case key.Matches(msg, keys.filter):
		m.filter.Status = nextFilter(models.TaskStatuses, m.filter.Status)
		m.cursor = 0
		return nil
	case key.Matches(msg, keys.prioFilt):
		m.filter.Priority = nextFilter(models.TaskPriorities, m.filter.Priority)
		m.cursor = 0
		return nil
	case key.Matches(msg, keys.clear):
		m.filter = models.TaskFilter{}
		m.cursor = 0
		return nil
	}

	t, ok := m.selectedTask()
	if !ok {
		return nil
	}

	switch {
	case key.Matches(msg, keys.status):
		in := t.Input()
		in.Status = t.Status.Next()
		return m.cmdMutate("Task status set to "+string(in.Status), app.MsgSaveFailed,
			func(ctx context.Context) error {
				_, err := m.sync.UpdateTask(ctx, t.ID, in)
				return err
			})
	case key.Matches(msg, keys.priority):
		in := t.Input()
		in.Priority = t.Priority.Next()
		return m.cmdMutate("Task priority set to "+string(in.Priority), app.MsgSaveFailed,
			func(ctx context.Context) error {
				_, err := m.sync.UpdateTask(ctx, t.ID, in)
				return err
			})
	case key.Matches(msg, keys.delete):
		m.confirm = &pendingDelete{
			label: t.Title,
			run: m.cmdMutate("Task deleted", app.MsgDeleteFailed,
				func(ctx context.Context) error {
					return m.sync.DeleteTask(ctx, t.ID)
				}),
		}
	}
	return nil
}

func (m *AdminModel) userKeys(msg tea.KeyMsg) tea.Cmd {
	if m.cursor >= len(m.users) {
		return nil
	}
	u := m.users[m.cursor]

	switch {
	case key.Matches(msg, keys.role):
		return m.cmdToggleRole(u)
	case key.Matches(msg, keys.copy):
		email := u.Email
		return func() tea.Msg {
			return copiedMsg{email: email, err: clipboard.WriteAll(email)}
		}
	}
	return nil
}

func (m *AdminModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.confirm
	switch {
	case key.Matches(msg, keys.yes):
		m.confirm = nil
		return m, pending.run
	case key.Matches(msg, keys.no):
		m.confirm = nil
	}
	return m, nil
}

func (m *AdminModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.form = nil
		m.submitting = false
		return m, nil
	case key.Matches(msg, keys.tab):
		m.form.fields.next()
		return m, nil
	case key.Matches(msg, keys.backtab):
		m.form.fields.prev()
		return m, nil
	case key.Matches(msg, keys.enter):
		if m.submitting {
			return m, nil
		}
		return m, m.submitForm()
	}

	return m, m.form.fields.update(msg)
}

func (m *AdminModel) submitForm() tea.Cmd {
	m.form.errMsg = ""

	if m.form.kind == models.CollectionTasks {
		in, err := m.form.taskInput()
		if err != nil {
			m.form.errMsg = service.UserMessage(err, app.MsgSaveFailed)
			return nil
		}
		m.submitting = true
		return m.cmdMutate("Task created", app.MsgSaveFailed,
			func(ctx context.Context) error {
				_, err := m.sync.CreateTask(ctx, in)
				return err
			})
	}

	in, err := m.form.projectInput()
	if err != nil {
		m.form.errMsg = service.UserMessage(err, app.MsgSaveFailed)
		return nil
	}
	m.submitting = true
	return m.cmdMutate("Project created", app.MsgSaveFailed,
		func(ctx context.Context) error {
			_, err := m.sync.CreateProject(ctx, in)
			return err
		})
}

func (m *AdminModel) switchTab(tab adminTab) tea.Cmd {
	if tab == m.tab {
		return nil
	}
	m.tab = tab
	m.cursor = 0
	m.status = ""
	m.errMsg = ""
	return m.startLoading()
}

func (m *AdminModel) startLoading() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return tea.Batch(m.spinner.Tick, m.cmdLoad(m.tab))
}

func (m *AdminModel) cmdLoad(tab adminTab) tea.Cmd {
	ctx := m.ctx
	sync := m.sync

	return func() tea.Msg {
		switch tab {
		case tabProjects:
			projects, err := sync.Projects(ctx)
			return projectsLoadedMsg{projects: projects, err: err}
		case tabTasks:
			tasks, err := sync.Tasks(ctx)
			return tasksLoadedMsg{tasks: tasks, err: err}
		case tabUsers:
			users, err := sync.Users(ctx)
			return usersLoadedMsg{users: users, err: err}
		default:
			d, err := sync.AdminDashboard(ctx)
			return dashboardLoadedMsg{admin: d, err: err}
		}
	}
}

// openForm loads the choices of the create form before showing it.
func (m *AdminModel) openForm() tea.Cmd {
	ctx := m.ctx
	sync := m.sync
	withProjects := m.tab == tabTasks

	m.loading = true
	m.status = ""
	m.errMsg = ""

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		developers, err := sync.Developers(ctx)
		if err != nil {
			return formOptionsLoadedMsg{err: err}
		}
		var projects []models.Project
		if withProjects {
			if projects, err = sync.Projects(ctx); err != nil {
				return formOptionsLoadedMsg{err: err}
			}
		}
		return formOptionsLoadedMsg{projects: projects, developers: developers}
	})
}

func (m *AdminModel) cmdMutate(status, fallback string, op func(context.Context) error) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		if err := op(ctx); err != nil {
			return mutationDoneMsg{err: err, fallback: fallback}
		}
		return mutationDoneMsg{status: status}
	}
}

// cmdToggleRole flips the role of u. Changing one's own role also updates the
// session, which moves the console to the new role's area.
func (m *AdminModel) cmdToggleRole(u models.User) tea.Cmd {
	ctx := m.ctx
	sync := m.sync
	sessions := m.sessions
	role := u.Role.Toggle()

	return func() tea.Msg {
		updated, err := sync.UpdateUserRole(ctx, u.ID, role)
		if err != nil {
			return mutationDoneMsg{err: err, fallback: app.MsgRoleUpdateFailed}
		}

		done := mutationDoneMsg{
			status: fmt.Sprintf("%s is now %s", valueOrDash(u.Name), role),
		}

		if self, ok := sessions.Current(); ok && self.UserID == u.ID {
			if updated.ID == "" {
				updated = u
				updated.Role = role
			}
			if err = sessions.UpdateUser(ctx, updated); err != nil {
				return mutationDoneMsg{err: err, fallback: app.MsgRoleUpdateFailed}
			}
			done.home = updated.Role.HomeArea()
		}
		return done
	}
}

func (m *AdminModel) cmdLogout() tea.Cmd {
	ctx := m.ctx
	sessions := m.sessions

	return func() tea.Msg {
		return logoutDoneMsg{err: sessions.Logout(ctx)}
	}
}

func (m *AdminModel) visibleTasks() []models.Task {
	return models.FilterTasks(m.tasks, m.filter)
}

func (m *AdminModel) selectedProject() (models.Project, bool) {
	if m.cursor >= len(m.projects) {
		return models.Project{}, false
	}
	return m.projects[m.cursor], true
}

func (m *AdminModel) selectedTask() (models.Task, bool) {
	tasks := m.visibleTasks()
	if m.cursor >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *AdminModel) rowCount() int {
	switch m.tab {
	case tabProjects:
		return len(m.projects)
	case tabTasks:
		return len(m.visibleTasks())
	case tabUsers:
		return len(m.users)
	default:
		return 0
	}
}

// nextFilter cycles "" → order[0] → ... → order[n-1] → "".
func nextFilter[T comparable](order []T, cur T) T {
	var zero T
	if cur == zero {
		return order[0]
	}
	for i, v := range order {
		if v == cur && i+1 < len(order) {
			return order[i+1]
		}
	}
	return zero
}

func (m *AdminModel) View() string {
	if m.form != nil {
		return m.form.view(m.submitting)
	}

	var b strings.Builder
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading...\n")
	} else {
		switch m.tab {
		case tabProjects:
			b.WriteString(m.projectsView())
		case tabTasks:
			b.WriteString(m.tasksView())
		case tabUsers:
			b.WriteString(m.usersView())
		default:
			b.WriteString(m.dashboardView())
		}
		b.WriteString("\n")
	}

	renderMessages(&b, m.status, m.errMsg)

	if m.confirm != nil {
		b.WriteString("\n")
		b.WriteString(confirmModel{message: m.confirm.label}.View())
		b.WriteString("\n")
	}

	title := "DEVONTIX ADMIN"
	if sess, ok := m.sessions.Current(); ok {
		title += " · " + sess.Name
	}

	return renderPage(title, strings.TrimRight(b.String(), "\n"), m.hotKeys())
}

func (m *AdminModel) tabsView() string {
	parts := make([]string, 0, len(adminTabNames))
	for i, name := range adminTabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if adminTab(i) == m.tab {
			label = activeTabStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "   ")
}

func (m *AdminModel) hotKeys() string {
	common := "tab/1-4: switch │ r: refresh │ L: logout │ q: quit"
	switch m.tab {
	case tabProjects:
		return "↑/↓: select │ n: new │ s: status │ d: delete │ " + common
	case tabTasks:
		return "↑/↓: select │ n: new │ s: status │ p: priority │ d: delete │ f/F: filter │ x: clear │ " + common
	case tabUsers:
		return "↑/↓: select │ t: toggle role │ c: copy email │ " + common
	default:
		return common
	}
}

func (m *AdminModel) dashboardView() string {
	d := m.dashboard
	var b strings.Builder

	b.WriteString(countLine("Projects", d.Overview.TotalProjects))
	b.WriteString("\n")
	b.WriteString(countLine("Tasks", d.Overview.TotalTasks))
	b.WriteString("\n")
	b.WriteString(countLine("Users", d.Overview.TotalUsers))
	b.WriteString("\n")
	b.WriteString(countLine("Overdue tasks", d.Overview.OverdueTasks))
	b.WriteString("\n\n")

	b.WriteString("Tasks by status:   ")
	b.WriteString(breakdown(models.TaskStatuses, d.Tasks.ByStatus))
	b.WriteString("\n")
	b.WriteString("Tasks by priority: ")
	b.WriteString(breakdown(models.TaskPriorities, d.Tasks.ByPriority))
	b.WriteString("\n")
	b.WriteString("Projects by status: ")
	b.WriteString(breakdown(models.ProjectStatuses, d.Projects.ByStatus))
	b.WriteString("\n\n")

	b.WriteString("Recent projects\n")
	rows := make([][]string, 0, len(d.RecentProjects))
	for _, p := range d.RecentProjects {
		rows = append(rows, []string{fitText(p.Title, 40), string(p.Status), formatDate(p.DueDate)})
	}
	b.WriteString(renderTable([]string{"Title", "Status", "Due"}, rows, -1))

	return b.String()
}

func breakdown[K ~string](order []K, counts map[K]int) string {
	parts := make([]string, 0, len(counts))
	seen := make(map[K]bool, len(order))
	for _, k := range order {
		seen[k] = true
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}

	// statuses the console does not know yet still show up
	extra := make([]string, 0)
	for k, n := range counts {
		if !seen[k] {
			extra = append(extra, fmt.Sprintf("%s %d", k, n))
		}
	}
	sort.Strings(extra)

	return strings.Join(append(parts, extra...), " · ")
}

func (m *AdminModel) projectsView() string {
	if len(m.projects) == 0 {
		return "No projects yet. Press n to create one."
	}

	rows := make([][]string, 0, len(m.projects))
	for _, p := range m.projects {
		devs := make([]string, 0, len(p.AssignedDevs))
		for _, d := range p.AssignedDevs {
			devs = append(devs, d.Label())
		}
		rows = append(rows, []string{
			fitText(p.Title, 32),
			string(p.Status),
			formatDate(p.DueDate),
			fitText(valueOrDash(strings.Join(devs, ", ")), 30),
		})
	}
	return renderTable([]string{"Title", "Status", "Due", "Developers"}, rows, m.cursor)
}

func (m *AdminModel) tasksView() string {
	var b strings.Builder

	if !m.filter.Empty() {
		fmt.Fprintf(&b, "Filter: status=%s priority=%s\n\n",
			valueOrDash(string(m.filter.Status)), valueOrDash(string(m.filter.Priority)))
	}

	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		if len(m.tasks) == 0 {
			b.WriteString("No tasks yet. Press n to create one.")
		} else {
			b.WriteString("No tasks match the filter.")
		}
		return b.String()
	}

	b.WriteString(renderTable([]string{"Title", "Project", "Assignee", "Status", "Priority", "Due"}, taskRows(tasks, m.now()), m.cursor))
	return b.String()
}

func taskRows(tasks []models.Task, now time.Time) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := formatDate(t.DueDate)
		if t.Overdue(now) {
			due += " !"
		}
		rows = append(rows, []string{
			fitText(t.Title, 32),
			fitText(valueOrDash(t.Project.Label()), 20),
			fitText(valueOrDash(t.AssignedTo.Label()), 20),
			string(t.Status),
			string(t.Priority),
			due,
		})
	}
	return rows
}

func (m *AdminModel) usersView() string {
	if len(m.users) == 0 {
		return "No users."
	}

	rows := make([][]string, 0, len(m.users))
	for _, u := range m.users {
		joined := "-"
		if !u.CreatedAt.IsZero() {
			joined = u.CreatedAt.Format(dateLayout)
		}
		rows = append(rows, []string{fitText(u.Name, 24), fitText(u.Email, 32), string(u.Role), joined})
	}

	counts := models.CountByRole(m.users)
	summary := fmt.Sprintf("Admins: %d · Developers: %d\n\n", counts[models.RoleAdmin], counts[models.RoleDeveloper])

	return summary + renderTable([]string{"Name", "Email", "Role", "Joined"}, rows, m.cursor)
}
