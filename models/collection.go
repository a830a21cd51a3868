// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CollectionKey names a cached resource collection.
type CollectionKey string

const (
	CollectionProjects       CollectionKey = "projects"
	CollectionTasks          CollectionKey = "tasks"
	CollectionUsers          CollectionKey = "users"
	CollectionAdminDashboard CollectionKey = "admin-dashboard"
	CollectionDevDashboard   CollectionKey = "dev-dashboard"
)

// Dependents returns the keys whose cached value aggregates k and therefore
// goes stale together with it. Dashboards depend on every collection.
func (k CollectionKey) Dependents() []CollectionKey {
	switch k {
	case CollectionProjects, CollectionTasks:
		return []CollectionKey{CollectionAdminDashboard, CollectionDevDashboard}
	case CollectionUsers:
		return []CollectionKey{CollectionAdminDashboard}
	default:
		return nil
	}
}
