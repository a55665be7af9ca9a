// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	authmongo "github.com/panelinha/panelinha/internal/auth/mongodb"
	"github.com/panelinha/panelinha/internal/config"
	recipemongo "github.com/panelinha/panelinha/internal/recipe/mongodb"
	storemongo "github.com/panelinha/panelinha/internal/storage/mongodb"
)

// newIndexesCmd creates the indexes subcommand.
func newIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create collection indexes and exit",
		Long: `Create the unique, TTL, and secondary indexes the collections
rely on. Safe to run repeatedly; serve also ensures indexes at boot.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndexes(cmd)
		},
	}
}

// runIndexes connects to the store, ensures all indexes, and reports.
func runIndexes(cmd *cobra.Command) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), bootstrapTimeout)
	defer cancel()

	store, err := storemongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = store.Close(closeCtx) //nolint:errcheck // Best effort on exit
	}()

	db := store.Database()
	if err := authmongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	if err := recipemongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	cmd.Println("indexes ensured")
	return nil
}
