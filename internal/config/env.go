// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv decodes environ, a list of KEY=value pairs as returned by
// os.Environ, into a new [StructuredConfig]. Only the variables named by the
// `env` and `envPrefix` tags are read; unset ones stay zero so later layers
// and defaults can fill them.
func parseEnv(environ []string) (*StructuredConfig, error) {
	cfg, err := env.ParseAsWithOptions[StructuredConfig](env.Options{
		Environment: env.ToMap(environ),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
