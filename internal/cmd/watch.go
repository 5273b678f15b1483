// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/telekom/refresher/internal/api"
	"github.com/telekom/refresher/internal/logging"
	"github.com/telekom/refresher/internal/metrics"
	"github.com/telekom/refresher/internal/refresh"
	"github.com/telekom/refresher/internal/trigger"
	"github.com/telekom/refresher/internal/utils"
	"github.com/telekom/refresher/internal/watch"
)

const shutdownTimeout = 5 * time.Second

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keeps running and starts a refresh cycle whenever the trigger file appears",
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(watchTrigger(cmd))
		},
	}
}

func watchTrigger(cmd *cobra.Command) int {
	var cfg = loadConfiguration(cmd)

	ctx, stop := utils.WithShutdownSignal(cmd.Context())
	defer stop()

	sink, err := logging.Open(cfg.Log, cfg.LogLevel, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Could not open log file!")
		return 1
	}
	utils.RegisterShutdownHook(func() { _ = sink.Close() }, 100)

	var logger = sink.Logger()
	if err := os.MkdirAll(filepath.Dir(cfg.Trigger.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Could not create trigger directory!")
		utils.GracefulShutdown()
		return 1
	}

	var registry = metrics.New()
	if cfg.Metrics.Enabled {
		var server = metrics.NewServer(registry, cfg.Metrics, logger)
		go server.ExposeMetrics()
		utils.RegisterShutdownHook(func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Warn().Err(err).Msg("Could not stop metrics server")
			}
		}, 1)
	}

	if cfg.Api.Enabled {
		var service = api.NewService(cfg.Api, trigger.NewSentinel(cfg.Trigger.Path, nil), logger)
		go service.Listen()
		utils.RegisterShutdownHook(func() { service.Shutdown(shutdownTimeout) }, 1)
	}

	var dispatcher = newDispatcher(cfg, logger, refresh.WithRecorder(registry))
	var watcher = watch.NewWatcher(dispatcher, cfg.Trigger.Path, cfg.Watch.Interval, cfg.Watch.Debounce, logger)

	err = watcher.Run(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Could not watch for trigger file!")
	}

	utils.GracefulShutdown()
	if err != nil {
		return 1
	}
	return 0
}
