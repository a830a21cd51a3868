// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/devontix-console/internal/app"
	"github.com/MKhiriev/devontix-console/internal/service"
	"github.com/MKhiriev/devontix-console/internal/validators"
	"github.com/MKhiriev/devontix-console/models"
)

// formValidator checks a form before it is submitted, with the same rules
// the sync service applies.
var formValidator = validators.NewResourceValidator()

// Field positions of the create forms.
const (
	formTitle = iota
	formDescription
	formDueDate
	formStatus
	formAssignee
	formProject  // task form only
	formPriority // task form only
)

// createForm collects a new project or task. kind is the collection the
// item goes to.
type createForm struct {
	kind   models.CollectionKey
	fields fieldSet
	errMsg string
}

func newProjectForm(developers []models.User) *createForm {
	statuses := make([]option, 0, len(models.ProjectStatuses))
	for _, s := range models.ProjectStatuses {
		statuses = append(statuses, option{label: string(s), value: string(s)})
	}

	return &createForm{
		kind: models.CollectionProjects,
		fields: newFieldSet(
			textField("Title", "project title", 200),
			textField("Description", "optional", 1000),
			textField("Due date", "YYYY-MM-DD, optional", 10),
			choiceField("Status", statuses),
			choiceField("Developer", developerOptions(developers)),
		),
	}
}

func newTaskForm(projects []models.Project, developers []models.User) *createForm {
	statuses := make([]option, 0, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		statuses = append(statuses, option{label: string(s), value: string(s)})
	}
	priorities := make([]option, 0, len(models.TaskPriorities))
	for _, p := range models.TaskPriorities {
		priorities = append(priorities, option{label: string(p), value: string(p)})
	}
	projectOpts := make([]option, 0, len(projects))
	for _, p := range projects {
		projectOpts = append(projectOpts, option{label: p.Title, value: p.ID})
	}

	f := &createForm{
		kind: models.CollectionTasks,
		fields: newFieldSet(
			textField("Title", "task title", 200),
			textField("Description", "optional", 1000),
			textField("Due date", "YYYY-MM-DD, optional", 10),
			choiceField("Status", statuses),
			choiceField("Assignee", developerOptions(developers)),
			choiceField("Project", projectOpts),
			choiceField("Priority", priorities),
		),
	}
	// medium is the server default
	f.fields.fields[formPriority].choice = 1

	return f
}

func developerOptions(developers []models.User) []option {
	opts := []option{{label: "(none)"}}
	for _, d := range developers {
		opts = append(opts, option{label: d.Name + " <" + d.Email + ">", value: d.ID})
	}
	return opts
}

func (f *createForm) title() string {
	if f.kind == models.CollectionProjects {
		return "NEW PROJECT"
	}
	return "NEW TASK"
}

func (f *createForm) commonValues() (title, description string, due *time.Time, err error) {
	title = strings.TrimSpace(f.fields.value(formTitle))
	description = strings.TrimSpace(f.fields.value(formDescription))

	if raw := strings.TrimSpace(f.fields.value(formDueDate)); raw != "" {
		d, parseErr := time.Parse(dateLayout, raw)
		if parseErr != nil {
			return "", "", nil, &service.InputError{Message: app.MsgInvalidDueDate}
		}
		due = &d
	}

	return title, description, due, nil
}

func (f *createForm) projectInput() (models.ProjectInput, error) {
	title, description, due, err := f.commonValues()
	if err != nil {
		return models.ProjectInput{}, err
	}

	in := models.ProjectInput{
		Title:       title,
		Description: description,
		Status:      models.ProjectStatus(f.fields.value(formStatus)),
		DueDate:     due,
	}
	if dev := f.fields.value(formAssignee); dev != "" {
		in.AssignedDevs = []string{dev}
	}
	if err = formValidator.Validate(context.Background(), in); err != nil {
		return models.ProjectInput{}, err
	}
	return in, nil
}

func (f *createForm) taskInput() (models.TaskInput, error) {
	title, description, due, err := f.commonValues()
	if err != nil {
		return models.TaskInput{}, err
	}

	in := models.TaskInput{
		Title:       title,
		Description: description,
		Status:      models.TaskStatus(f.fields.value(formStatus)),
		Priority:    models.TaskPriority(f.fields.value(formPriority)),
		DueDate:     due,
		Project:     f.fields.value(formProject),
		AssignedTo:  f.fields.value(formAssignee),
	}
	if err = formValidator.Validate(context.Background(), in); err != nil {
		return models.TaskInput{}, err
	}
	return in, nil
}

func (f *createForm) view(submitting bool) string {
	var b strings.Builder
	b.WriteString(f.fields.view())

	if submitting {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Create]\n")
	}
	renderMessages(&b, "", f.errMsg)

	return renderPage(f.title(), strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ ←/→: choose │ enter: create")
}
