// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/telekom/refresher/internal/logging"
	"github.com/telekom/refresher/internal/refresh"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Runs a single refresh cycle if the trigger file is present",
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(runOnce(cmd))
		},
	}
}

// runOnce returns the process exit code. The log file is closed before the process exits.
func runOnce(cmd *cobra.Command) int {
	var cfg = loadConfiguration(cmd)

	sink, err := logging.Open(cfg.Log, cfg.LogLevel, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Could not open log file!")
		return 1
	}
	defer sink.Close()

	_, err = newDispatcher(cfg, sink.Logger()).Run(cmd.Context())
	return refresh.ExitCode(err)
}
