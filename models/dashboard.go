// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AdminOverview holds the headline counters of the admin dashboard.
type AdminOverview struct {
	TotalProjects int `json:"totalProjects"`
	TotalTasks    int `json:"totalTasks"`
	TotalUsers    int `json:"totalUsers"`
	OverdueTasks  int `json:"overdueTasks"`
}

// DevOverview holds the headline counters of the developer dashboard.
type DevOverview struct {
	AssignedProjects int `json:"assignedProjects"`
	AssignedTasks    int `json:"assignedTasks"`
	OverdueTasks     int `json:"overdueTasks"`
}

// TaskBreakdown groups task counts by status and priority.
type TaskBreakdown struct {
	ByStatus   map[TaskStatus]int   `json:"byStatus"`
	ByPriority map[TaskPriority]int `json:"byPriority"`
}

// ProjectBreakdown groups project counts by status.
type ProjectBreakdown struct {
	ByStatus map[ProjectStatus]int `json:"byStatus"`
}

// AdminDashboard is the data of GET /dashboard/admin.
type AdminDashboard struct {
	Overview       AdminOverview    `json:"overview"`
	Projects       ProjectBreakdown `json:"projects"`
	Tasks          TaskBreakdown    `json:"tasks"`
	RecentProjects []Project        `json:"recentProjects"`
}

// DevDashboard is the data of GET /dashboard/dev.
type DevDashboard struct {
	Overview    DevOverview   `json:"overview"`
	Tasks       TaskBreakdown `json:"tasks"`
	RecentTasks []Task        `json:"recentTasks"`
}
