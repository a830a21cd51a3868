// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/devontix-console/internal/config"
	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/utils"
	"github.com/MKhiriev/devontix-console/models"
)

const requestIDHeader = "X-Request-ID"

type skipUnauthorizedHookKey struct{}

type httpAPIAdapter struct {
	client *utils.HTTPClient
	ids    utils.IDGenerator

	mu             sync.RWMutex
	token          string
	onUnauthorized func()

	logger *logger.Logger
}

// NewHTTPAPIAdapter constructs the resty implementation of [APIAdapter].
// It normalises and validates the base URL from cfg.HTTPAddress and installs
// the request hooks (bearer token, request id, 401 handling, logging).
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAPIAdapter(cfg config.ConsoleAdapter, logger *logger.Logger) (APIAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	h := &httpAPIAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}

	h.client.
		OnBeforeRequest(h.beforeRequest).
		OnAfterResponse(h.afterResponse)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAPIAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAPIAdapter) SetUnauthorizedHandler(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnauthorized = fn
}

func (h *httpAPIAdapter) beforeRequest(_ *resty.Client, r *resty.Request) error {
	if token := h.Token(); token != "" && r.Header.Get("Authorization") == "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}

	requestID, ok := utils.GetRequestIDFromContext(r.Context())
	if !ok {
		requestID = h.ids.Generate()
	}
	r.SetHeader(requestIDHeader, requestID)

	return nil
}

func (h *httpAPIAdapter) afterResponse(_ *resty.Client, resp *resty.Response) error {
	h.logger.Debug().
		Str("func", "httpAPIAdapter.afterResponse").
		Str("request_id", resp.Request.Header.Get(requestIDHeader)).
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("api call")

	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}
	if skip, _ := resp.Request.Context().Value(skipUnauthorizedHookKey{}).(bool); skip {
		return nil
	}

	h.mu.RLock()
	fn := h.onUnauthorized
	h.mu.RUnlock()

	if fn != nil {
		h.logger.Info().
			Str("func", "httpAPIAdapter.afterResponse").
			Str("request_id", resp.Request.Header.Get(requestIDHeader)).
			Msg("token rejected by server")
		fn()
	}

	return nil
}

func (h *httpAPIAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	// a wrong password is a form error, not a lost session
	ctx = context.WithValue(ctx, skipUnauthorizedHookKey{}, true)

	result, err := send[models.LoginResult](ctx, h, http.MethodPost, "/auth/login", req)
	if err != nil {
		return models.LoginResult{}, fmt.Errorf("login request: %w", err)
	}
	if result.Token == "" {
		return models.LoginResult{}, fmt.Errorf("login request: %w: empty token", ErrDecodeResponse)
	}

	return result, nil
}

func (h *httpAPIAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	ctx = context.WithValue(ctx, skipUnauthorizedHookKey{}, true)

	result, err := send[models.LoginResult](ctx, h, http.MethodPost, "/auth/register", req)
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}

	return result.User, nil
}

func (h *httpAPIAdapter) Me(ctx context.Context) (models.User, error) {
	raw, err := send[json.RawMessage](ctx, h, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}

	// data is either {"user": {...}} or the user itself
	var item models.UserItem
	if err = json.Unmarshal(raw, &item); err == nil && item.User.ID != "" {
		return item.User, nil
	}

	var user models.User
	if err = json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		return models.User{}, fmt.Errorf("me request: %w: no user in response", ErrDecodeResponse)
	}

	return user, nil
}

func (h *httpAPIAdapter) Projects(ctx context.Context) ([]models.Project, error) {
	list, err := send[models.ProjectList](ctx, h, http.MethodGet, "/projects", nil)
	if err != nil {
		return nil, fmt.Errorf("get projects request: %w", err)
	}
	return list.Projects, nil
}

func (h *httpAPIAdapter) CreateProject(ctx context.Context, in models.ProjectInput) (models.Project, error) {
	item, err := send[models.ProjectItem](ctx, h, http.MethodPost, "/projects", in)
	if err != nil {
		return models.Project{}, fmt.Errorf("create project request: %w", err)
	}
	return item.Project, nil
}

func (h *httpAPIAdapter) UpdateProject(ctx context.Context, id string, in models.ProjectInput) (models.Project, error) {
	item, err := send[models.ProjectItem](ctx, h, http.MethodPut, "/projects/"+url.PathEscape(id), in)
	if err != nil {
		return models.Project{}, fmt.Errorf("update project request: %w", err)
	}
	return item.Project, nil
}

func (h *httpAPIAdapter) DeleteProject(ctx context.Context, id string) error {
	if _, err := send[json.RawMessage](ctx, h, http.MethodDelete, "/projects/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete project request: %w", err)
	}
	return nil
}

func (h *httpAPIAdapter) Tasks(ctx context.Context) ([]models.Task, error) {
	list, err := send[models.TaskList](ctx, h, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, fmt.Errorf("get tasks request: %w", err)
	}
	return list.Tasks, nil
}

func (h *httpAPIAdapter) CreateTask(ctx context.Context, in models.TaskInput) (models.Task, error) {
	item, err := send[models.TaskItem](ctx, h, http.MethodPost, "/tasks", in)
	if err != nil {
		return models.Task{}, fmt.Errorf("create task request: %w", err)
	}
	return item.Task, nil
}

func (h *httpAPIAdapter) UpdateTask(ctx context.Context, id string, in models.TaskInput) (models.Task, error) {
	item, err := send[models.TaskItem](ctx, h, http.MethodPut, "/tasks/"+url.PathEscape(id), in)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task request: %w", err)
	}
	return item.Task, nil
}

func (h *httpAPIAdapter) DeleteTask(ctx context.Context, id string) error {
	if _, err := send[json.RawMessage](ctx, h, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete task request: %w", err)
	}
	return nil
}

func (h *httpAPIAdapter) Users(ctx context.Context) ([]models.User, error) {
	list, err := send[models.UserList](ctx, h, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, fmt.Errorf("get users request: %w", err)
	}
	return list.Users, nil
}

func (h *httpAPIAdapter) UpdateUserRole(ctx context.Context, id string, role models.Role) (models.User, error) {
	path := "/users/" + url.PathEscape(id) + "/role"
	item, err := send[models.UserItem](ctx, h, http.MethodPatch, path, models.RoleUpdate{Role: role})
	if err != nil {
		return models.User{}, fmt.Errorf("update user role request: %w", err)
	}
	return item.User, nil
}

func (h *httpAPIAdapter) AdminDashboard(ctx context.Context) (models.AdminDashboard, error) {
	d, err := send[models.AdminDashboard](ctx, h, http.MethodGet, "/dashboard/admin", nil)
	if err != nil {
		return models.AdminDashboard{}, fmt.Errorf("get admin dashboard request: %w", err)
	}
	return d, nil
}

func (h *httpAPIAdapter) DevDashboard(ctx context.Context) (models.DevDashboard, error) {
	d, err := send[models.DevDashboard](ctx, h, http.MethodGet, "/dashboard/dev", nil)
	if err != nil {
		return models.DevDashboard{}, fmt.Errorf("get dev dashboard request: %w", err)
	}
	return d, nil
}

// send performs one API call and unwraps the response envelope.
func send[T any](ctx context.Context, h *httpAPIAdapter, method, path string, body any) (T, error) {
	var zero T

	req := h.client.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return zero, err
	}

	if len(strings.TrimSpace(string(resp.Body()))) == 0 {
		return zero, nil
	}

	var env models.Envelope[T]
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	if !env.Success {
		return zero, &ResponseError{
			StatusCode: resp.StatusCode(),
			Message:    env.Message,
			kind:       ErrRequestFailed,
		}
	}

	return env.Data, nil
}
