// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/devontix-console/internal/config"
	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/utils"
	"github.com/MKhiriev/devontix-console/models"
)

// newTestAdapter creates an httpAPIAdapter pointed at a test server running r.
func newTestAdapter(t *testing.T, r http.Handler) *httpAPIAdapter {
	t.Helper()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	a, err := NewHTTPAPIAdapter(config.ConsoleAdapter{HTTPAddress: srv.URL + "/api/v1/"}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpAPIAdapter)
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "http://localhost:5000/api/v1", want: "http://localhost:5000/api/v1"},
		{name: "no scheme", raw: "localhost:5000/api/v1/", want: "http://localhost:5000/api/v1"},
		{name: "spaces", raw: "  https://api.devontix.io  ", want: "https://api.devontix.io"},
		{name: "empty", raw: "   ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPAPIAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPAPIAdapter(config.ConsoleAdapter{}, logger.Nop())
	require.Error(t, err)
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ada@devontix.io", req.Email)
		assert.Equal(t, "secret", req.Password)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))

		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"user":  map[string]any{"_id": "u1", "name": "Ada", "email": req.Email, "role": "Admin"},
			"token": "jwt-token",
		})
	})

	a := newTestAdapter(t, r)
	res, err := a.Login(context.Background(), models.LoginRequest{Email: "ada@devontix.io", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
	assert.Equal(t, "u1", res.User.ID)
	assert.Empty(t, a.Token(), "login must not install the token by itself")
}

func TestLogin_WrongPasswordDoesNotTriggerUnauthorizedHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "Invalid credentials", nil)
	})

	a := newTestAdapter(t, r)
	var called atomic.Bool
	a.SetUnauthorizedHandler(func() { called.Store(true) })

	_, err := a.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "bad"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called.Load())

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, "Invalid credentials", respErr.Message)
	assert.Equal(t, http.StatusUnauthorized, respErr.StatusCode)
}

func TestLogin_SuccessFalseEnvelope(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, false, "Account disabled", nil)
	})

	a := newTestAdapter(t, r)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "p"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "Account disabled")
}

func TestLogin_EmptyToken(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{"user": map[string]any{"_id": "u1"}})
	})

	a := newTestAdapter(t, r)
	_, err := a.Login(context.Background(), models.LoginRequest{Email: "x@y.z", Password: "p"})

	assert.ErrorIs(t, err, ErrDecodeResponse)
}

func TestRegister_Conflict(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, false, "User already exists", nil)
	})

	a := newTestAdapter(t, r)
	_, err := a.Register(context.Background(), models.RegisterRequest{Name: "A", Email: "a@b.c", Password: "p"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "User already exists")
}

func TestMe(t *testing.T) {
	t.Run("wrapped user", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			writeEnvelope(w, http.StatusOK, true, "", map[string]any{
				"user": map[string]any{"_id": "u2", "name": "Linus", "role": "Developer"},
			})
		})

		a := newTestAdapter(t, r)
		a.SetToken(" tok ")
		u, err := a.Me(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "u2", u.ID)
		assert.Equal(t, models.RoleDeveloper, u.Role)
	})

	t.Run("bare user", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, true, "", map[string]any{"_id": "u3", "role": "Admin"})
		})

		a := newTestAdapter(t, r)
		u, err := a.Me(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "u3", u.ID)
	})

	t.Run("no user", func(t *testing.T) {
		r := chi.NewRouter()
		r.Get("/api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, true, "", nil)
		})

		a := newTestAdapter(t, r)
		_, err := a.Me(context.Background())

		assert.ErrorIs(t, err, ErrDecodeResponse)
	})
}

// ── Unauthorized hook ────────────────────────────────────────────────────────

func TestUnauthorizedHandler_CalledOn401(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "Token expired", nil)
	})

	a := newTestAdapter(t, r)
	a.SetToken("expired")

	var calls atomic.Int32
	a.SetUnauthorizedHandler(func() { calls.Add(1) })

	_, err := a.Projects(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestUnauthorizedHandler_NotCalledOnOtherErrors(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusForbidden, false, "Admins only", nil)
	})

	a := newTestAdapter(t, r)
	var calls atomic.Int32
	a.SetUnauthorizedHandler(func() { calls.Add(1) })

	_, err := a.Users(context.Background())

	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, calls.Load())
}

// ── Request id ───────────────────────────────────────────────────────────────

func TestRequestID_FromContext(t *testing.T) {
	var got string
	r := chi.NewRouter()
	r.Get("/api/v1/tasks", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(requestIDHeader)
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{"tasks": []any{}})
	})

	a := newTestAdapter(t, r)
	_, err := a.Tasks(utils.WithRequestID(context.Background(), "req-42"))

	require.NoError(t, err)
	assert.Equal(t, "req-42", got)
}

// ── Collections ──────────────────────────────────────────────────────────────

func TestProjectsCRUD(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/api/v1/projects", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(w, http.StatusOK, true, "", map[string]any{
				"projects": []any{
					map[string]any{"_id": "p1", "title": "Apollo", "status": "active", "createdBy": "u1"},
				},
			})
		})
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var in models.ProjectInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			writeEnvelope(w, http.StatusCreated, true, "created", map[string]any{
				"project": map[string]any{"_id": "p2", "title": in.Title, "status": in.Status},
			})
		})
		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			var in models.ProjectInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			writeEnvelope(w, http.StatusOK, true, "", map[string]any{
				"project": map[string]any{"_id": chi.URLParam(r, "id"), "status": in.Status},
			})
		})
		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "id") == "missing" {
				writeEnvelope(w, http.StatusNotFound, false, "Project not found", nil)
				return
			}
			writeEnvelope(w, http.StatusOK, true, "deleted", map[string]any{})
		})
	})

	a := newTestAdapter(t, r)
	ctx := context.Background()

	projects, err := a.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Apollo", projects[0].Title)
	require.NotNil(t, projects[0].CreatedBy)
	assert.Equal(t, "u1", projects[0].CreatedBy.ID)

	created, err := a.CreateProject(ctx, models.ProjectInput{Title: "Gemini", Status: models.ProjectPlanning})
	require.NoError(t, err)
	assert.Equal(t, "p2", created.ID)
	assert.Equal(t, "Gemini", created.Title)

	updated, err := a.UpdateProject(ctx, "p2", models.ProjectInput{Status: models.ProjectActive})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectActive, updated.Status)

	require.NoError(t, a.DeleteProject(ctx, "p2"))

	err = a.DeleteProject(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Project not found")
}

func TestTasksCRUD(t *testing.T) {
	var lastBody map[string]any
	r := chi.NewRouter()
	r.Get("/api/v1/tasks", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"tasks": []any{map[string]any{
				"_id":        "t1",
				"title":      "Write docs",
				"status":     "todo",
				"priority":   "high",
				"project":    map[string]any{"_id": "p1", "title": "Apollo"},
				"assignedTo": map[string]any{"_id": "u2", "name": "Linus"},
			}},
		})
	})
	r.Post("/api/v1/tasks", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusCreated, true, "", map[string]any{"task": map[string]any{"_id": "t2"}})
	})
	r.Put("/api/v1/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		lastBody = map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lastBody))
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{"task": map[string]any{"_id": chi.URLParam(r, "id"), "status": "done"}})
	})
	r.Delete("/api/v1/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, false, "boom", nil)
	})

	a := newTestAdapter(t, r)
	ctx := context.Background()

	tasks, err := a.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Apollo", tasks[0].Project.Label())
	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)

	created, err := a.CreateTask(ctx, models.TaskInput{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, "t2", created.ID)

	updated, err := a.UpdateTask(ctx, "t1", models.TaskInput{Status: models.TaskDone})
	require.NoError(t, err)
	assert.Equal(t, models.TaskDone, updated.Status)
	assert.Equal(t, map[string]any{"status": "done"}, lastBody, "status change sends status only")

	err = a.DeleteTask(ctx, "t1")
	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestUsers(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{"users": []any{
			map[string]any{"_id": "u1", "role": "Admin"},
			map[string]any{"_id": "u2", "role": "Developer"},
		}})
	})
	r.Patch("/api/v1/users/{id}/role", func(w http.ResponseWriter, r *http.Request) {
		var body models.RoleUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"user": map[string]any{"_id": chi.URLParam(r, "id"), "role": body.Role},
		})
	})

	a := newTestAdapter(t, r)
	ctx := context.Background()

	users, err := a.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	u, err := a.UpdateUserRole(ctx, "u2", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "u2", u.ID)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestDashboards(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/dashboard/admin", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"overview": map[string]any{"totalProjects": 3, "totalTasks": 10, "totalUsers": 4, "overdueTasks": 1},
		})
	})
	r.Get("/api/v1/dashboard/dev", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadGateway, false, "", nil)
	})

	a := newTestAdapter(t, r)
	ctx := context.Background()

	admin, err := a.AdminDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, admin.Overview.TotalProjects)
	assert.Equal(t, 1, admin.Overview.OverdueTasks)

	_, err = a.DevDashboard(ctx)
	assert.ErrorIs(t, err, ErrBadGateway)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a, err := NewHTTPAPIAdapter(config.ConsoleAdapter{HTTPAddress: url}, logger.Nop())
	require.NoError(t, err)

	_, err = a.Projects(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestMapHTTPError_PlainBody(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	a := newTestAdapter(t, r)
	_, err := a.Users(context.Background())

	require.ErrorIs(t, err, ErrUnexpectedStatus)
	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, "short and stout", respErr.Message)
}
