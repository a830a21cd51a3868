// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/devontix-console/internal/config"
	"github.com/MKhiriev/devontix-console/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewConsoleWorkers returns the background workers of a console run.
func NewConsoleWorkers(services *service.ConsoleServices, cfg config.ConsoleWorkers) *Workers {
	return &Workers{workers: []Worker{
		&sessionExpiryWorker{job: services.SessionExpiryJob, interval: cfg.SessionCheckInterval},
	}}
}

// Start starts every worker in registration order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// sessionExpiryWorker runs the session expiry job at a fixed interval.
type sessionExpiryWorker struct {
	job      service.SessionExpiryJob
	interval time.Duration
}

func (s *sessionExpiryWorker) Start(ctx context.Context) {
	s.job.Start(ctx, s.interval)
}

func (s *sessionExpiryWorker) Stop() {
	s.job.Stop()
}
