// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/panelinha/panelinha/internal/auth"
	authmongo "github.com/panelinha/panelinha/internal/auth/mongodb"
	"github.com/panelinha/panelinha/internal/config"
	"github.com/panelinha/panelinha/internal/httpapi"
	"github.com/panelinha/panelinha/internal/logging"
	"github.com/panelinha/panelinha/internal/observability"
	"github.com/panelinha/panelinha/internal/recipe"
	recipemongo "github.com/panelinha/panelinha/internal/recipe/mongodb"
	storemongo "github.com/panelinha/panelinha/internal/storage/mongodb"
	"github.com/panelinha/panelinha/pkg/errutil"
)

// Lifecycle timeouts.
const (
	bootstrapTimeout = 30 * time.Second
	shutdownTimeout  = 10 * time.Second
)

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API and observability servers",
		Long: `Start the HTTP API server together with the metrics and health
probe server, connect to MongoDB, and ensure collection indexes.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}
}

// runServe wires the storage client, services, and servers, then blocks
// until a shutdown signal or a server failure.
func runServe() error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	logging.SetDefault("panelinha", version, cfg.LogFormat)
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	store, err := storemongo.Connect(bootCtx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer closeCancel()
		if closeErr := store.Close(closeCtx); closeErr != nil {
			errutil.LogError(logger, "close store", closeErr)
		}
	}()

	db := store.Database()
	if err := authmongo.EnsureIndexes(bootCtx, db); err != nil {
		return err
	}
	if err := recipemongo.EnsureIndexes(bootCtx, db); err != nil {
		return err
	}

	credentials, err := auth.NewCredentialServiceWithLogger(
		authmongo.NewUserRepository(db), auth.NewBcryptHasher(), logger)
	if err != nil {
		return err
	}
	sessions, err := auth.NewSessionServiceWithLogger(
		authmongo.NewSessionRepository(db), logger)
	if err != nil {
		return err
	}
	recipes, err := recipe.NewServiceWithLogger(
		recipemongo.NewRepository(db), logger)
	if err != nil {
		return err
	}

	// One explicit sweep at boot; the TTL index handles the rest
	if _, purgeErr := sessions.PurgeExpired(bootCtx); purgeErr != nil {
		errutil.LogError(logger, "purge expired sessions", purgeErr)
	}

	var ready atomic.Bool
	obs := observability.NewServer(cfg.ObservabilityAddr, ready.Load)
	obsErrCh, err := obs.Start()
	if err != nil {
		return err
	}

	api, err := httpapi.New(httpapi.Options{
		Addr:        cfg.ListenAddr,
		Credentials: credentials,
		Sessions:    sessions,
		Recipes:     recipes,
		Logger:      logger,
		Metrics:     obs.Metrics(),
	})
	if err != nil {
		return err
	}
	apiErrCh, err := api.Start()
	if err != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stopCancel()
		_ = obs.Stop(stopCtx) //nolint:errcheck // Best effort on failed boot
		return err
	}

	ready.Store(true)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr := <-apiErrCh:
		if serveErr != nil {
			errutil.LogError(logger, "api server failed", serveErr)
		}
	case serveErr := <-obsErrCh:
		if serveErr != nil {
			errutil.LogError(logger, "observability server failed", serveErr)
		}
	}

	ready.Store(false)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()
	if stopErr := api.Stop(stopCtx); stopErr != nil {
		errutil.LogError(logger, "stop api server", stopErr)
	}
	if stopErr := obs.Stop(stopCtx); stopErr != nil {
		errutil.LogError(logger, "stop observability server", stopErr)
	}

	return nil
}
