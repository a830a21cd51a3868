// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/devontix-console/internal/adapter"
	"github.com/MKhiriev/devontix-console/internal/app"
	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/mock"
	"github.com/MKhiriev/devontix-console/internal/store"
	"github.com/MKhiriev/devontix-console/internal/utils"
	"github.com/MKhiriev/devontix-console/internal/validators"
	"github.com/MKhiriev/devontix-console/models"
)

// newTestSyncSvc creates a syncService over a real cache and a mocked adapter.
func newTestSyncSvc(t *testing.T, ctrl *gomock.Controller) (*syncService, *mock.MockAPIAdapter, *store.CollectionCache) {
	t.Helper()
	api := mock.NewMockAPIAdapter(ctrl)
	cache := store.NewCollectionCache()

	svc := NewSyncService(&store.ConsoleStorages{Collections: cache}, api, logger.Nop()).(*syncService)
	return svc, api, cache
}

// ── FetchCollection ──────────────────────────────────────────────────────────

func TestFetchCollection_CachesOnMiss(t *testing.T) {
	cache := store.NewCollectionCache()
	ctx := context.Background()

	calls := 0
	loader := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, err := FetchCollection(ctx, cache, models.CollectionProjects, loader)
	require.NoError(t, err)
	second, err := FetchCollection(ctx, cache, models.CollectionProjects, loader)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestFetchCollection_LoaderErrorNotCached(t *testing.T) {
	cache := store.NewCollectionCache()
	ctx := context.Background()

	_, err := FetchCollection(ctx, cache, models.CollectionTasks, func(context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	require.Error(t, err)

	_, ok := cache.Get(models.CollectionTasks)
	assert.False(t, ok)
}

func TestFetchCollection_StaleFetchDoesNotOverwriteInvalidation(t *testing.T) {
	cache := store.NewCollectionCache()
	ctx := context.Background()

	value, err := FetchCollection(ctx, cache, models.CollectionTasks, func(context.Context) (string, error) {
		// a mutation lands while the read is in flight
		cache.Invalidate(models.CollectionTasks)
		return "stale", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", value, "caller still gets what it fetched")

	_, ok := cache.Get(models.CollectionTasks)
	assert.False(t, ok, "stale value must not be cached")
}

func TestFetchCollection_ResetDuringFetch(t *testing.T) {
	cache := store.NewCollectionCache()
	ctx := context.Background()

	_, err := FetchCollection(ctx, cache, models.CollectionUsers, func(context.Context) (string, error) {
		cache.Reset()
		return "previous user", nil
	})
	require.NoError(t, err)

	_, ok := cache.Get(models.CollectionUsers)
	assert.False(t, ok)
}

// ── Mutate ───────────────────────────────────────────────────────────────────

func TestMutate_SuccessInvalidatesKeyAndDependents(t *testing.T) {
	cache := store.NewCollectionCache()
	ctx := context.Background()

	for _, key := range []models.CollectionKey{
		models.CollectionTasks, models.CollectionAdminDashboard, models.CollectionDevDashboard, models.CollectionUsers,
	} {
		cache.SetIfCurrent(key, cache.Stamp(key), "cached")
	}

	got, err := Mutate(ctx, cache, models.CollectionTasks, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	for _, key := range []models.CollectionKey{models.CollectionTasks, models.CollectionAdminDashboard, models.CollectionDevDashboard} {
		_, ok := cache.Get(key)
		assert.False(t, ok, "%s should be invalidated", key)
	}
	_, ok := cache.Get(models.CollectionUsers)
	assert.True(t, ok)
}

func TestMutate_FailureLeavesCache(t *testing.T) {
	cache := store.NewCollectionCache()
	ctx := context.Background()
	cache.SetIfCurrent(models.CollectionProjects, cache.Stamp(models.CollectionProjects), "cached")

	_, err := Mutate(ctx, cache, models.CollectionProjects, func(context.Context) (int, error) {
		return 0, adapter.NewResponseError(400, "Title is required")
	})
	require.Error(t, err)
	assert.Equal(t, "Title is required", UserMessage(err, app.MsgSaveFailed))

	v, ok := cache.Get(models.CollectionProjects)
	require.True(t, ok)
	assert.Equal(t, "cached", v)
}

// ── typed helpers ────────────────────────────────────────────────────────────

func TestSyncService_MutationIsVisibleOnNextRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	before := []models.Project{{ID: "p1", Status: models.ProjectPlanning}}
	after := []models.Project{{ID: "p1", Status: models.ProjectActive}}

	gomock.InOrder(
		api.EXPECT().Projects(gomock.Any()).Return(before, nil),
		api.EXPECT().UpdateProject(gomock.Any(), "p1", models.ProjectInput{Status: models.ProjectActive}).
			Return(after[0], nil),
		api.EXPECT().Projects(gomock.Any()).Return(after, nil),
	)

	got, err := svc.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, got)

	// cached: no second request
	got, err = svc.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, got)

	_, err = svc.UpdateProject(ctx, "p1", models.ProjectInput{Status: models.ProjectActive})
	require.NoError(t, err)

	got, err = svc.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestSyncService_FailedMutationKeepsCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	tasks := []models.Task{{ID: "t1", Status: models.TaskTodo}}
	api.EXPECT().Tasks(gomock.Any()).Return(tasks, nil).Times(1)
	api.EXPECT().DeleteTask(gomock.Any(), "t1").Return(adapter.NewResponseError(403, "Not allowed"))

	_, err := svc.Tasks(ctx)
	require.NoError(t, err)

	err = svc.DeleteTask(ctx, "t1")
	require.ErrorIs(t, err, adapter.ErrForbidden)

	got, err := svc.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
}

func TestSyncService_ReturnedSlicesAreCopies(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	api.EXPECT().Users(gomock.Any()).Return([]models.User{{ID: "u1", Name: "Ada"}}, nil)

	first, err := svc.Users(ctx)
	require.NoError(t, err)
	first[0].Name = "changed"

	second, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", second[0].Name)
}

func TestSyncService_Developers(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	api.EXPECT().Users(gomock.Any()).Return([]models.User{
		{ID: "u1", Role: models.RoleAdmin},
		{ID: "u2", Role: models.RoleDeveloper},
		{ID: "u3", Role: models.RoleDeveloper},
	}, nil)

	devs, err := svc.Developers(ctx)
	require.NoError(t, err)
	require.Len(t, devs, 2)
	assert.Equal(t, "u2", devs[0].ID)

	api.EXPECT().Users(gomock.Any()).Return(nil, adapter.ErrNetwork)
	svc.Invalidate(models.CollectionUsers)
	_, err = svc.Developers(ctx)
	assert.Equal(t, app.MsgNetworkUnavailable, UserMessage(err, app.MsgLoadFailed))
}

func TestSyncService_UpdateTaskStatusSendsStatusOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestSyncSvc(t, ctrl)

	api.EXPECT().UpdateTask(gomock.Any(), "t1", models.TaskInput{Status: models.TaskReview}).
		Return(models.Task{ID: "t1", Status: models.TaskReview}, nil)

	task, err := svc.UpdateTaskStatus(context.Background(), "t1", models.TaskReview)
	require.NoError(t, err)
	assert.Equal(t, models.TaskReview, task.Status)
}

func TestSyncService_DashboardsRefetchAfterTaskMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().DevDashboard(gomock.Any()).Return(models.DevDashboard{Overview: models.DevOverview{AssignedTasks: 2}}, nil),
		api.EXPECT().CreateTask(gomock.Any(), gomock.Any()).Return(models.Task{ID: "t3"}, nil),
		api.EXPECT().DevDashboard(gomock.Any()).Return(models.DevDashboard{Overview: models.DevOverview{AssignedTasks: 3}}, nil),
	)

	d, err := svc.DevDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Overview.AssignedTasks)

	_, err = svc.CreateTask(ctx, models.TaskInput{Title: "new", Project: "p1"})
	require.NoError(t, err)

	d, err = svc.DevDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Overview.AssignedTasks)
}

func TestSyncService_ProjectMutationsInvalidateTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, cache := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	cache.SetIfCurrent(models.CollectionTasks, cache.Stamp(models.CollectionTasks), []models.Task{})
	api.EXPECT().DeleteProject(gomock.Any(), "p1").Return(nil)

	require.NoError(t, svc.DeleteProject(ctx, "p1"))

	_, ok := cache.Get(models.CollectionTasks)
	assert.False(t, ok)
}

func TestSyncService_UserRoleInvalidatesUsersAndAdminDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, cache := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	for _, key := range []models.CollectionKey{models.CollectionUsers, models.CollectionAdminDashboard, models.CollectionTasks} {
		cache.SetIfCurrent(key, cache.Stamp(key), "cached")
	}
	api.EXPECT().UpdateUserRole(gomock.Any(), "u2", models.RoleAdmin).Return(models.User{ID: "u2", Role: models.RoleAdmin}, nil)

	u, err := svc.UpdateUserRole(ctx, "u2", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, ok := cache.Get(models.CollectionUsers)
	assert.False(t, ok)
	_, ok = cache.Get(models.CollectionAdminDashboard)
	assert.False(t, ok)
	_, ok = cache.Get(models.CollectionTasks)
	assert.True(t, ok)
}

func TestSyncService_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, cache := newTestSyncSvc(t, ctrl)

	cache.SetIfCurrent(models.CollectionAdminDashboard, cache.Stamp(models.CollectionAdminDashboard), models.AdminDashboard{})
	svc.Reset()

	assert.Zero(t, cache.Len())
}

func TestSyncService_InvalidInputNeverReachesAPI(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, cache := newTestSyncSvc(t, ctrl)
	ctx := context.Background()

	cache.SetIfCurrent(models.CollectionTasks, cache.Stamp(models.CollectionTasks), []models.Task{{ID: "t1"}})

	_, err := svc.CreateProject(ctx, models.ProjectInput{Description: "no title"})
	assert.ErrorIs(t, err, validators.ErrEmptyTitle)

	_, err = svc.CreateTask(ctx, models.TaskInput{Title: "orphan"})
	assert.ErrorIs(t, err, validators.ErrEmptyProject)

	_, err = svc.UpdateTask(ctx, "t1", models.TaskInput{Priority: "critical"})
	assert.ErrorIs(t, err, validators.ErrInvalidTaskPriority)

	_, err = svc.UpdateTaskStatus(ctx, "t1", "")
	assert.ErrorIs(t, err, validators.ErrInvalidTaskStatus)

	_, err = svc.UpdateUserRole(ctx, "u1", "Owner")
	assert.ErrorIs(t, err, validators.ErrInvalidRole)

	// rejected input leaves the cache alone
	_, ok := cache.Get(models.CollectionTasks)
	assert.True(t, ok)
}

func TestSyncService_RequestIDReachesAdapter(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestSyncSvc(t, ctrl)

	var seen []string
	api.EXPECT().DeleteTask(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ string) error {
		id, ok := utils.GetRequestIDFromContext(ctx)
		require.True(t, ok)
		seen = append(seen, id)
		return nil
	}).Times(2)

	require.NoError(t, svc.DeleteTask(context.Background(), "t1"))
	require.NoError(t, svc.DeleteTask(utils.WithRequestID(context.Background(), "req-7"), "t2"))

	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.Equal(t, "req-7", seen[1])
}
