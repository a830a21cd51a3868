// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/devontix-console/internal/logger"
)

const defaultSessionCheckInterval = time.Minute

type sessionExpiryJob struct {
	sessions SessionService
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSessionExpiryJob creates a job that calls sessions.ExpireIfDue on a
// ticker. The job is idle until Start is called.
func NewSessionExpiryJob(sessions SessionService, logger *logger.Logger) SessionExpiryJob {
	return &sessionExpiryJob{sessions: sessions, now: time.Now, logger: logger}
}

// Start implements SessionExpiryJob. It stops any previously running job,
// then checks the session every interval until ctx is cancelled or Stop is
// called. A non-positive interval defaults to one minute. Concurrent calls
// leave exactly one job running.
func (j *sessionExpiryJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSessionCheckInterval
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopLocked()

	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if j.sessions.ExpireIfDue(jobCtx, j.now()) {
					j.logger.Info().Str("func", "sessionExpiryJob.Start").Msg("session expired during run")
				}
			}
		}
	}()
}

// Stop implements SessionExpiryJob. Safe to call when the job is not running.
func (j *sessionExpiryJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopLocked()
}

// stopLocked cancels the running job and waits for it. j.mu must be held;
// the job goroutine never takes it.
func (j *sessionExpiryJob) stopLocked() {
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.wg.Wait()
}
