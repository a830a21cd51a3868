// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/devontix-console/internal/adapter"
	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/store"
	"github.com/MKhiriev/devontix-console/internal/utils"
	"github.com/MKhiriev/devontix-console/internal/validators"
	"github.com/MKhiriev/devontix-console/models"
)

// FetchCollection returns the value cached under key, calling loader on a
// miss. A loaded value is cached only if key was not invalidated while
// loader ran; it is returned to the caller either way. Loader errors are
// returned unchanged and nothing is cached.
func FetchCollection[T any](
	ctx context.Context,
	cache *store.CollectionCache,
	key models.CollectionKey,
	loader func(context.Context) (T, error),
) (T, error) {
	if v, ok := cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	stamp := cache.Stamp(key)

	value, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if !cache.SetIfCurrent(key, stamp, value) {
		logger.FromContext(ctx).Debug().
			Str("func", "FetchCollection").
			Str("collection", string(key)).
			Msg("discarded result of fetch overtaken by invalidation")
	}

	return value, nil
}

// Mutate runs op and, only if it succeeds, invalidates key together with
// the keys that aggregate it. A failed op leaves the cache unchanged.
func Mutate[T any](
	ctx context.Context,
	cache *store.CollectionCache,
	key models.CollectionKey,
	op func(context.Context) (T, error),
) (T, error) {
	result, err := op(ctx)
	if err != nil {
		return result, err
	}

	keys := append([]models.CollectionKey{key}, key.Dependents()...)
	cache.Invalidate(keys...)

	logger.FromContext(ctx).Debug().
		Str("func", "Mutate").
		Str("collection", string(key)).
		Int("invalidated", len(keys)).
		Msg("mutation applied")

	return result, nil
}

type syncService struct {
	api       adapter.APIAdapter
	cache     *store.CollectionCache
	validator validators.Validator
	ids       utils.IDGenerator

	logger *logger.Logger
}

// NewSyncService creates the sync service on top of the shared collection
// cache.
func NewSyncService(storages *store.ConsoleStorages, api adapter.APIAdapter, logger *logger.Logger) SyncService {
	return &syncService{
		api:       api,
		cache:     storages.Collections,
		validator: validators.NewResourceValidator(),
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

// ctx tags ctx with a request id, reusing one already present, so the
// operation's log entries and the X-Request-ID header match.
func (s *syncService) ctx(ctx context.Context) context.Context {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = s.ids.Generate()
		ctx = utils.WithRequestID(ctx, requestID)
	}

	l := s.logger.With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx)
}

func (s *syncService) Projects(ctx context.Context) ([]models.Project, error) {
	projects, err := FetchCollection(s.ctx(ctx), s.cache, models.CollectionProjects, s.api.Projects)
	return slices.Clone(projects), err
}

func (s *syncService) Tasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := FetchCollection(s.ctx(ctx), s.cache, models.CollectionTasks, s.api.Tasks)
	return slices.Clone(tasks), err
}

func (s *syncService) Users(ctx context.Context) ([]models.User, error) {
	users, err := FetchCollection(s.ctx(ctx), s.cache, models.CollectionUsers, s.api.Users)
	return slices.Clone(users), err
}

func (s *syncService) Developers(ctx context.Context) ([]models.User, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	return models.Developers(users), nil
}

func (s *syncService) AdminDashboard(ctx context.Context) (models.AdminDashboard, error) {
	return FetchCollection(s.ctx(ctx), s.cache, models.CollectionAdminDashboard, s.api.AdminDashboard)
}

func (s *syncService) DevDashboard(ctx context.Context) (models.DevDashboard, error) {
	return FetchCollection(s.ctx(ctx), s.cache, models.CollectionDevDashboard, s.api.DevDashboard)
}

func (s *syncService) CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	if err := s.validator.Validate(ctx, in); err != nil {
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}
	return Mutate(s.ctx(ctx), s.cache, models.CollectionProjects, func(ctx context.Context) (models.Project, error) {
		return s.api.CreateProject(ctx, in)
	})
}

// UpdateProject sends a partial update: only the fields present in "in" are
// checked.
func (s *syncService) UpdateProject(ctx context.Context, id string, in models.ProjectInput) (models.Project, error) {
	if err := s.validator.Validate(ctx, in, validators.FieldStatus, validators.FieldDates); err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	p, err := Mutate(s.ctx(ctx), s.cache, models.CollectionProjects, func(ctx context.Context) (models.Project, error) {
		return s.api.UpdateProject(ctx, id, in)
	})
	if err == nil {
		// tasks embed the project title
		s.cache.Invalidate(models.CollectionTasks)
	}
	return p, err
}

func (s *syncService) DeleteProject(ctx context.Context, id string) error {
	_, err := Mutate(s.ctx(ctx), s.cache, models.CollectionProjects, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.DeleteProject(ctx, id)
	})
	if err == nil {
		s.cache.Invalidate(models.CollectionTasks)
	}
	return err
}

func (s *syncService) CreateTask(ctx context.Context, in models.TaskInput) (models.Task, error) {
	if err := s.validator.Validate(ctx, in); err != nil {
		return models.Task{}, fmt.Errorf("create task: %w", err)
	}
	return Mutate(s.ctx(ctx), s.cache, models.CollectionTasks, func(ctx context.Context) (models.Task, error) {
		return s.api.CreateTask(ctx, in)
	})
}

func (s *syncService) UpdateTask(ctx context.Context, id string, in models.TaskInput) (models.Task, error) {
	if err := s.validator.Validate(ctx, in, validators.FieldStatus, validators.FieldPriority); err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return s.updateTask(ctx, id, in)
}

func (s *syncService) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	in := models.TaskInput{Status: status}
	if err := s.validator.Validate(ctx, in, validators.FieldStatusChange); err != nil {
		return models.Task{}, fmt.Errorf("update task status: %w", err)
	}
	return s.updateTask(ctx, id, in)
}

func (s *syncService) updateTask(ctx context.Context, id string, in models.TaskInput) (models.Task, error) {
	return Mutate(s.ctx(ctx), s.cache, models.CollectionTasks, func(ctx context.Context) (models.Task, error) {
		return s.api.UpdateTask(ctx, id, in)
	})
}

func (s *syncService) DeleteTask(ctx context.Context, id string) error {
	_, err := Mutate(s.ctx(ctx), s.cache, models.CollectionTasks, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.DeleteTask(ctx, id)
	})
	return err
}

func (s *syncService) UpdateUserRole(ctx context.Context, id string, role models.Role) (models.User, error) {
	if err := s.validator.Validate(ctx, models.RoleUpdate{Role: role}); err != nil {
		return models.User{}, fmt.Errorf("update user role: %w", err)
	}
	return Mutate(s.ctx(ctx), s.cache, models.CollectionUsers, func(ctx context.Context) (models.User, error) {
		return s.api.UpdateUserRole(ctx, id, role)
	})
}

func (s *syncService) Invalidate(keys ...models.CollectionKey) {
	s.cache.Invalidate(keys...)
}

func (s *syncService) Reset() {
	s.cache.Reset()
}
