// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestParseFile_JSON(t *testing.T) {
	p := writeConfigFile(t, "console.json", `{
		"api": {"address": "http://localhost:5000/api/v1", "request_timeout": "10s"},
		"storage": {"db": {"dsn": "session.db"}},
		"session": {"ttl": "48h"},
		"workers": {"session_check_interval": 30000000000},
		"log": {"level": "info", "file": "console.log"}
	}`)

	cfg, err := parseFile(p)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api/v1", cfg.API.Address)
	assert.Equal(t, 10*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "session.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 48*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.Workers.SessionCheckInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console.log", cfg.Log.File)
	assert.Empty(t, cfg.ConfigFilePath)
}

func TestParseFile_YAML(t *testing.T) {
	p := writeConfigFile(t, "console.yml", `
api:
  address: http://api.devontix.io/api/v1
  request_timeout: 3s
storage:
  db:
    dsn: /tmp/session.db
session:
  ttl: 1h
workers:
  session_check_interval: 15s
`)

	cfg, err := parseFile(p)
	require.NoError(t, err)

	assert.Equal(t, "http://api.devontix.io/api/v1", cfg.API.Address)
	assert.Equal(t, 3*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "/tmp/session.db", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 15*time.Second, cfg.Workers.SessionCheckInterval)
}

func TestParseFile_InvalidJSON(t *testing.T) {
	p := writeConfigFile(t, "console.json", `{"api": `)

	_, err := parseFile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseFile_InvalidYAMLDuration(t *testing.T) {
	p := writeConfigFile(t, "console.yaml", "session:\n  ttl: someday\n")

	_, err := parseFile(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding yaml configs")
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(90 * time.Second).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(b))
}
