// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/devontix-console/internal/adapter"
	"github.com/MKhiriev/devontix-console/internal/app"
	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/store"
	"github.com/MKhiriev/devontix-console/internal/utils"
	"github.com/MKhiriev/devontix-console/models"
)

type sessionService struct {
	repo        store.SessionRepository
	collections *store.CollectionCache
	api         adapter.APIAdapter
	ttl         time.Duration
	now         func() time.Time

	restoreMu sync.Mutex
	restored  bool

	mu      sync.RWMutex
	state   models.SessionState
	session models.Session

	subsMu  sync.Mutex
	subs    map[int]func()
	nextSub int

	logger *logger.Logger
}

// NewSessionService creates the session service. ttl bounds the lifetime of
// every new session; zero leaves the token's own expiry as the only limit.
// The service starts in the loading state until Restore or Login.
func NewSessionService(storages *store.ConsoleStorages, api adapter.APIAdapter, ttl time.Duration, logger *logger.Logger) SessionService {
	return &sessionService{
		repo:        storages.SessionRepository,
		collections: storages.Collections,
		api:         api,
		ttl:         ttl,
		now:         time.Now,
		state:       models.SessionLoading,
		subs:        make(map[int]func()),
		logger:      logger,
	}
}

func (s *sessionService) Restore(ctx context.Context) models.SessionState {
	s.restoreMu.Lock()
	defer s.restoreMu.Unlock()

	if s.restored {
		return s.State()
	}
	s.restored = true

	log := s.logger.With().Str("func", "sessionService.Restore").Logger()

	persisted, err := s.repo.GetSession(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		log.Debug().Msg("no persisted session")
		s.setUnauthenticated()
		return models.SessionUnauthenticated
	}
	if err != nil {
		log.Err(err).Msg("cannot read persisted session")
		s.setUnauthenticated()
		return models.SessionUnauthenticated
	}

	if persisted.Token == "" || persisted.Expired(s.now()) {
		log.Info().Time("expires_at", persisted.ExpiresAt).Msg("persisted session expired")
		s.clear(ctx)
		return models.SessionUnauthenticated
	}

	s.api.SetToken(persisted.Token)

	user, err := s.api.Me(ctx)
	if err != nil {
		log.Info().Err(err).Msg("persisted token rejected")
		s.clear(ctx)
		return models.SessionUnauthenticated
	}

	refreshed := persisted.WithUser(user)
	if !refreshed.Role.Valid() {
		log.Warn().Str("role", string(refreshed.Role)).Msg("persisted session has unknown role")
		s.clear(ctx)
		return models.SessionUnauthenticated
	}
	if err = s.repo.SaveSession(ctx, refreshed); err != nil {
		log.Err(err).Msg("cannot re-persist refreshed session")
	}

	s.mu.Lock()
	s.session = refreshed
	s.state = models.SessionAuthenticated
	s.mu.Unlock()

	log.Info().Str("user_id", refreshed.UserID).Str("role", string(refreshed.Role)).Msg("session restored")
	return models.SessionAuthenticated
}

func (s *sessionService) Login(ctx context.Context, email, password string) (models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Session{}, &InputError{Message: app.MsgEmptyCredentials}
	}

	res, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.logger.Debug().Err(err).Str("func", "sessionService.Login").Msg("login rejected")
		return models.Session{}, fmt.Errorf("login: %w", err)
	}
	if !res.User.Role.Valid() {
		return models.Session{}, fmt.Errorf("login: %w: %q", ErrUnknownRole, res.User.Role)
	}

	now := s.now()
	sess := models.NewSession(res.User, res.Token, now, s.expiry(res.Token, now))

	if err = s.repo.SaveSession(ctx, sess); err != nil {
		s.logger.Err(err).Str("func", "sessionService.Login").Msg("cannot persist session")
		return models.Session{}, fmt.Errorf("login: persist session: %w", err)
	}

	// a new identity must not see the previous user's collections
	s.collections.Reset()
	s.api.SetToken(sess.Token)

	s.mu.Lock()
	s.session = sess
	s.state = models.SessionAuthenticated
	s.mu.Unlock()

	s.logger.Info().
		Str("func", "sessionService.Login").
		Str("user_id", sess.UserID).
		Str("role", string(sess.Role)).
		Time("expires_at", sess.ExpiresAt).
		Msg("logged in")

	return sess, nil
}

func (s *sessionService) Register(ctx context.Context, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return "", &InputError{Message: app.MsgEmptyRegistration}
	}

	user, err := s.api.Register(ctx, models.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("func", "sessionService.Register").Str("user_id", user.ID).Msg("account registered")
	return app.MsgRegistrationSuccessful, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	_, err := s.clear(ctx)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.Info().Str("func", "sessionService.Logout").Msg("logged out")
	return nil
}

func (s *sessionService) UpdateUser(ctx context.Context, user models.User) error {
	s.mu.RLock()
	if s.state != models.SessionAuthenticated {
		s.mu.RUnlock()
		return ErrNotAuthenticated
	}
	updated := s.session.WithUser(user)
	s.mu.RUnlock()

	if err := s.repo.SaveSession(ctx, updated); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.mu.Lock()
	authenticated := s.state == models.SessionAuthenticated
	current := s.session
	if authenticated && current.Token == updated.Token {
		s.session = updated
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	// The session changed while the row was written: a forced logout or a
	// new login. Disk must follow memory, not the stale write.
	s.logger.Info().Str("func", "sessionService.UpdateUser").Msg("session changed during update, reverting persisted row")
	if !authenticated {
		if err := s.repo.DeleteSession(ctx); err != nil {
			return fmt.Errorf("update user: revert persisted session: %w", err)
		}
		return ErrNotAuthenticated
	}
	if err := s.repo.SaveSession(ctx, current); err != nil {
		return fmt.Errorf("update user: revert persisted session: %w", err)
	}
	return ErrNotAuthenticated
}

func (s *sessionService) Guard(area models.Area) error {
	role, protected := area.RequiredRole()
	if !protected {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != models.SessionAuthenticated {
		return ErrNotAuthenticated
	}
	if s.session.Role != role {
		return fmt.Errorf("%w: %s cannot open %s", ErrForbiddenArea, s.session.Role, area)
	}
	return nil
}

func (s *sessionService) HandleUnauthorized() {
	s.forceLogout(context.Background(), "token rejected by server")
}

func (s *sessionService) ExpireIfDue(ctx context.Context, now time.Time) bool {
	s.mu.RLock()
	due := s.state == models.SessionAuthenticated && s.session.Expired(now)
	s.mu.RUnlock()

	if !due {
		return false
	}
	return s.forceLogout(ctx, "session expired")
}

// forceLogout clears the session and notifies subscribers if a session was
// actually held.
func (s *sessionService) forceLogout(ctx context.Context, reason string) bool {
	wasAuthenticated, err := s.clear(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "sessionService.forceLogout").Msg("cannot delete persisted session")
	}
	if !wasAuthenticated {
		return false
	}

	s.logger.Info().Str("func", "sessionService.forceLogout").Str("reason", reason).Msg("forced logout")
	s.notify()
	return true
}

func (s *sessionService) Subscribe(fn func()) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

func (s *sessionService) notify() {
	s.subsMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *sessionService) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *sessionService) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.state == models.SessionAuthenticated
}

// clear drops the session from memory, transport, cache and disk. It reports
// whether a session was held.
func (s *sessionService) clear(ctx context.Context) (bool, error) {
	s.mu.Lock()
	wasAuthenticated := s.state == models.SessionAuthenticated
	s.session = models.Session{}
	s.state = models.SessionUnauthenticated
	s.mu.Unlock()

	s.api.SetToken("")
	s.collections.Reset()

	return wasAuthenticated, s.repo.DeleteSession(ctx)
}

func (s *sessionService) setUnauthenticated() {
	s.mu.Lock()
	s.session = models.Session{}
	s.state = models.SessionUnauthenticated
	s.mu.Unlock()
}

// expiry is the earlier of the token's own exp claim and now+ttl.
func (s *sessionService) expiry(token string, now time.Time) time.Time {
	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = now.Add(s.ttl)
	}

	if tokenExp, ok := utils.TokenExpiry(token); ok && (expiresAt.IsZero() || tokenExp.Before(expiresAt)) {
		expiresAt = tokenExp
	}
	return expiresAt
}
