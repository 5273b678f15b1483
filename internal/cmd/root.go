// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import "github.com/spf13/cobra"

var rootCmd = newRootCommand()

func newRootCommand() *cobra.Command {
	var root = &cobra.Command{
		Use:   "refresher",
		Short: "Refresher triggers extract refreshes of reporting dashboards once an upstream job drops a trigger file.",
	}

	root.CompletionOptions.DisableDefaultCmd = true
	root.SilenceUsage = true
	root.PersistentFlags().StringP("config", "c", "", "sets the configuration file (config.yml in the working directory if unset)")
	root.AddCommand(newInitCommand(), newRunCommand(), newWatchCommand(), newTriggerCommand(), newPairsCommand())
	return root
}
