// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig mirrors [StructuredConfig] for file decoding. The same
// layout is used for JSON and YAML.
type StructuredFileConfig struct {
	API struct {
		Address        string   `json:"address" yaml:"address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"api,omitempty" yaml:"api,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db,omitempty" yaml:"db,omitempty"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Session struct {
		TTL Duration `json:"ttl" yaml:"ttl"`
	} `json:"session,omitempty" yaml:"session,omitempty"`

	Workers struct {
		SessionCheckInterval Duration `json:"session_check_interval" yaml:"session_check_interval"`
	} `json:"workers,omitempty" yaml:"workers,omitempty"`

	Log struct {
		Level string `json:"level" yaml:"level"`
		File  string `json:"file" yaml:"file"`
	} `json:"log,omitempty" yaml:"log,omitempty"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err = json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return &StructuredConfig{
		API: API{
			Address:        fileCfg.API.Address,
			RequestTimeout: time.Duration(fileCfg.API.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{DSN: fileCfg.Storage.DB.DSN},
		},
		Session: Session{TTL: time.Duration(fileCfg.Session.TTL)},
		Workers: Workers{SessionCheckInterval: time.Duration(fileCfg.Workers.SessionCheckInterval)},
		Log: Log{
			Level: fileCfg.Log.Level,
			File:  fileCfg.Log.File,
		},
	}, nil
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" as well as from integer nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if tmp, err := time.ParseDuration(s); err == nil {
		*d = Duration(tmp)
		return nil
	}

	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(n))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
