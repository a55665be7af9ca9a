// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Panelinha CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "panelinha",
		Short: "Panelinha - a recipe sharing API",
		Long: `Panelinha is an HTTP backend for user accounts and user-owned
recipe records, with bearer-token sessions backed by MongoDB.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newIndexesCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}
