// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/devontix-console/internal/adapter"
	"github.com/MKhiriev/devontix-console/internal/config"
	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/store"
)

// ConsoleServices groups the services used by the console UI.
type ConsoleServices struct {
	SessionService   SessionService
	SyncService      SyncService
	SessionExpiryJob SessionExpiryJob
}

// NewConsoleServices wires the services over the local storages and the API
// adapter. Every 401 the adapter sees ends in the session service.
func NewConsoleServices(storages *store.ConsoleStorages, api adapter.APIAdapter, cfg config.ConsoleSession, logger *logger.Logger) *ConsoleServices {
	sessions := NewSessionService(storages, api, cfg.TTL, logger)
	api.SetUnauthorizedHandler(sessions.HandleUnauthorized)

	return &ConsoleServices{
		SessionService:   sessions,
		SyncService:      NewSyncService(storages, api, logger),
		SessionExpiryJob: NewSessionExpiryJob(sessions, logger),
	}
}
