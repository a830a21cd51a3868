// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists statuses in workflow order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone}

// Next returns the status following s in [TaskStatuses], wrapping around.
func (s TaskStatus) Next() TaskStatus {
	return next(TaskStatuses, s)
}

// TaskPriority is the urgency of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// TaskPriorities lists priorities from lowest to highest.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Next returns the priority following p in [TaskPriorities], wrapping around.
func (p TaskPriority) Next() TaskPriority {
	return next(TaskPriorities, p)
}

// Task is a task document as returned by GET /tasks.
type Task struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Project     *Ref         `json:"project,omitempty"`
	AssignedTo  *Ref         `json:"assignedTo,omitempty"`
	CreatedBy   *Ref         `json:"createdBy,omitempty"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
}

// Overdue reports whether the task has a due date before now and is not done.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != TaskDone && t.DueDate.Before(now)
}

// Input converts the task into a full update payload.
func (t Task) Input() TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Project:     RefID(t.Project),
		AssignedTo:  RefID(t.AssignedTo),
	}
}

// TaskInput is the body of POST /tasks and PUT /tasks/:id. Developers may only
// change the status, so every field is optional on the wire.
type TaskInput struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Project     string       `json:"project,omitempty"`
	AssignedTo  string       `json:"assignedTo,omitempty"`
}

// TaskFilter narrows a task list. Empty fields match everything.
type TaskFilter struct {
	Status    TaskStatus
	Priority  TaskPriority
	ProjectID string
}

// Empty reports whether the filter matches every task.
func (f TaskFilter) Empty() bool {
	return f == TaskFilter{}
}

// Match reports whether t passes the filter.
func (f TaskFilter) Match(t Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.ProjectID != "" && RefID(t.Project) != f.ProjectID {
		return false
	}
	return true
}

// FilterTasks returns the tasks matching f, preserving order.
func FilterTasks(tasks []Task, f TaskFilter) []Task {
	if f.Empty() {
		return tasks
	}

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
