// Copyright 2024 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/telekom/refresher/internal/pairs"
)

func newPairsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pairs",
		Short: "Counts the distinct pairs with difference k (input: \"n k\" followed by n integers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pairs.Solve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
