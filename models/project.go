// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ProjectStatuses lists statuses in the order the admin screen cycles them.
var ProjectStatuses = []ProjectStatus{ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled}

// Next returns the status following s in [ProjectStatuses], wrapping around.
func (s ProjectStatus) Next() ProjectStatus {
	return next(ProjectStatuses, s)
}

// Project is a project document as returned by GET /projects.
type Project struct {
	ID           string        `json:"_id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Status       ProjectStatus `json:"status"`
	StartDate    *time.Time    `json:"startDate,omitempty"`
	DueDate      *time.Time    `json:"dueDate,omitempty"`
	AssignedDevs []Ref         `json:"assignedDevs"`
	CreatedBy    *Ref          `json:"createdBy,omitempty"`
	CreatedAt    time.Time     `json:"createdAt,omitempty"`
}

// Input converts the project into an update payload carrying ids instead of
// populated references.
func (p Project) Input() ProjectInput {
	devs := make([]string, 0, len(p.AssignedDevs))
	for _, d := range p.AssignedDevs {
		devs = append(devs, d.ID)
	}

	return ProjectInput{
		Title:        p.Title,
		Description:  p.Description,
		Status:       p.Status,
		StartDate:    p.StartDate,
		DueDate:      p.DueDate,
		AssignedDevs: devs,
	}
}

// ProjectInput is the body of POST /projects and PUT /projects/:id.
type ProjectInput struct {
	Title        string        `json:"title,omitempty"`
	Description  string        `json:"description,omitempty"`
	Status       ProjectStatus `json:"status,omitempty"`
	StartDate    *time.Time    `json:"startDate,omitempty"`
	DueDate      *time.Time    `json:"dueDate,omitempty"`
	AssignedDevs []string      `json:"assignedDevs,omitempty"`
}

func next[T comparable](order []T, cur T) T {
	for i, v := range order {
		if v == cur {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
