// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ConsoleAdapter holds network settings used by the API adapter.
type ConsoleAdapter struct {
	// HTTPAddress is the REST API base URL.
	HTTPAddress string
	// RequestTimeout is the timeout for outbound requests.
	RequestTimeout time.Duration
}

// ConsoleStorage groups local storage settings.
type ConsoleStorage struct {
	// DSN is the SQLite file path holding the persisted session.
	DSN string
}

// ConsoleSession holds session settings.
type ConsoleSession struct {
	// TTL is the maximum session lifetime.
	TTL time.Duration
}

// ConsoleWorkers contains background job settings.
type ConsoleWorkers struct {
	// SessionCheckInterval defines how often the expiry job runs.
	SessionCheckInterval time.Duration
}

// ConsoleLog contains logger settings.
type ConsoleLog struct {
	Level string
	File  string
}

// ConsoleConfig is the console configuration view assembled from
// [StructuredConfig].
type ConsoleConfig struct {
	Adapter ConsoleAdapter
	Storage ConsoleStorage
	Session ConsoleSession
	Workers ConsoleWorkers
	Log     ConsoleLog
}

// GetConsoleConfig builds and validates the console config view from the
// merged structured configuration.
func GetConsoleConfig() (*ConsoleConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	consoleCfg := newConsoleConfig(cfg)
	return consoleCfg, consoleCfg.validate()
}

func newConsoleConfig(cfg *StructuredConfig) *ConsoleConfig {
	return &ConsoleConfig{
		Adapter: ConsoleAdapter{
			HTTPAddress:    cfg.API.Address,
			RequestTimeout: cfg.API.RequestTimeout,
		},
		Storage: ConsoleStorage{DSN: cfg.Storage.DB.DSN},
		Session: ConsoleSession{TTL: cfg.Session.TTL},
		Workers: ConsoleWorkers{SessionCheckInterval: cfg.Workers.SessionCheckInterval},
		Log:     ConsoleLog{Level: cfg.Log.Level, File: cfg.Log.File},
	}
}
