// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It is populated
// by merging values from environment variables, command-line flags, and an
// optional config file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// API holds the location of the Devontix REST API and outbound request
	// settings.
	API API `envPrefix:"API_"`

	// Storage holds the local persistence settings (session database).
	Storage Storage `envPrefix:"STORAGE_"`

	// Session holds session lifetime settings.
	Session Session `envPrefix:"SESSION_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_"`

	// ConfigFilePath is the optional path to a JSON or YAML config file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// API holds outbound transport settings.
type API struct {
	// Address is the base URL of the REST API, including the version prefix
	// (e.g. "http://localhost:5000/api/v1"). A bare host:port gets "http://".
	// Env: API_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds a single API request (e.g. "15s").
	// Env: API_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups local storage settings.
type Storage struct {
	// DB holds the SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path (e.g. "devontix-console.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Session holds session lifetime settings.
type Session struct {
	// TTL is how long a persisted session stays valid after login, unless
	// the token itself expires earlier.
	// Env: SESSION_TTL
	TTL time.Duration `env:"TTL"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// SessionCheckInterval is how often the session expiry job looks at the
	// current session.
	// Env: WORKERS_SESSION_CHECK_INTERVAL
	SessionCheckInterval time.Duration `env:"SESSION_CHECK_INTERVAL"`
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is the log file path. Empty means "logs" next to the executable.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// Defaults holds the values used for fields no source has set.
var Defaults = StructuredConfig{
	API: API{
		Address:        "http://localhost:5000/api/v1",
		RequestTimeout: 15 * time.Second,
	},
	Storage: Storage{
		DB: DB{DSN: "devontix-console.db"},
	},
	Session: Session{
		TTL: 7 * 24 * time.Hour,
	},
	Workers: Workers{
		SessionCheckInterval: time.Minute,
	},
	Log: Log{
		Level: "debug",
	},
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. Config file (path resolved from sources 1 and 2)
//
// Defaults are applied last, to zero fields only.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withFile().
		withDefaults().
		build()
}
