// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/devontix-console/internal/adapter"
	"github.com/MKhiriev/devontix-console/internal/client"
	"github.com/MKhiriev/devontix-console/internal/config"
	"github.com/MKhiriev/devontix-console/internal/logger"
	"github.com/MKhiriev/devontix-console/internal/service"
	"github.com/MKhiriev/devontix-console/internal/store"
	"github.com/MKhiriev/devontix-console/internal/tui"
	"github.com/MKhiriev/devontix-console/internal/workers"
	"github.com/MKhiriev/devontix-console/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetConsoleConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewConsoleLogger("devontix-console", cfg.Log.File, cfg.Log.Level)
	log.Info().
		Str("version", buildInfo.Version).
		Str("commit", buildInfo.Commit).
		Str("api", cfg.Adapter.HTTPAddress).
		Msg("starting console")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := adapter.NewHTTPAPIAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create api adapter")
	}

	storages, err := store.NewConsoleStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("close local storage")
		}
	}()

	services := service.NewConsoleServices(storages, api, cfg.Session, log)
	ui := tui.New(services, buildInfo, log)

	app, err := client.NewApp(services, ui, workers.NewConsoleWorkers(services, cfg.Workers), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init console app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("console run error")
		fmt.Fprintln(os.Stderr, err)
		_ = storages.Close()
		stop()
		os.Exit(1)
	}
}
