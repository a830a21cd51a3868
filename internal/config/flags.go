// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// APIAddress holds the API base URL given on the command line.
// It implements the flag.Value interface.
type APIAddress struct {
	URL string
}

// ParseFlags parses the console flags from the process arguments.
//
// Flags:
//
//	-a API base URL or host:port
//	-request-timeout outbound request timeout (e.g. "15s")
//	-d SQLite session database path
//	-session-ttl session lifetime (e.g. "168h")
//	-session-check-interval expiry job interval (e.g. "1m")
//	-log-level zerolog level name
//	-log-file log file path
//	-c/-config JSON or YAML config file path
func ParseFlags(args []string) (*StructuredConfig, error) {
	return parseFlags(args)
}

func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("devontix-console", flag.ContinueOnError)

	var apiAddress APIAddress
	var requestTimeout time.Duration
	var dsn string
	var sessionTTL time.Duration
	var sessionCheckInterval time.Duration
	var logLevel string
	var logFile string
	var configPath string

	fs.Var(&apiAddress, "a", "API base URL (scheme://host:port/prefix or host:port)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	fs.StringVar(&dsn, "d", "", "SQLite session database path")
	fs.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 168h)")
	fs.DurationVar(&sessionCheckInterval, "session-check-interval", 0, "Session expiry check interval (e.g., 1m)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&configPath, "c", "", "Config file path (JSON or YAML)")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		API: API{
			Address:        apiAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: dsn},
		},
		Session: Session{TTL: sessionTTL},
		Workers: Workers{SessionCheckInterval: sessionCheckInterval},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns the URL as given, or "" when unset.
func (a *APIAddress) String() string {
	return a.URL
}

// Set accepts a full URL or a host:port pair. A missing scheme defaults to
// http. Returns an error when no host can be found.
func (a *APIAddress) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("empty API address")
	}

	raw := s
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("incorrect API address: %w", err)
	}
	if u.Host == "" {
		return errors.New("API address must include a host")
	}

	a.URL = strings.TrimRight(u.String(), "/")
	return nil
}
