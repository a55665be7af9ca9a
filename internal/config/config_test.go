// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelinha/panelinha/internal/config"
	"github.com/panelinha/panelinha/pkg/errutil"
)

func TestLoad(t *testing.T) {
	t.Run("environment fills required values", func(t *testing.T) {
		t.Setenv("PNL_MONGO_URI", "mongodb://localhost:27017")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	})

	t.Run("defaults apply when unset", func(t *testing.T) {
		t.Setenv("PNL_MONGO_URI", "mongodb://localhost:27017")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, "panelinha", cfg.MongoDatabase)
		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.Equal(t, "127.0.0.1:9100", cfg.ObservabilityAddr)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("PNL_MONGO_URI", "mongodb://localhost:27017")
		t.Setenv("PNL_LISTEN_ADDR", ":9999")
		t.Setenv("PNL_LOG_FORMAT", "text")

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.ListenAddr)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("missing mongo URI fails", func(t *testing.T) {
		// Viper treats an empty env var as unset
		t.Setenv("PNL_MONGO_URI", "")

		_, err := config.Load("")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CONFIG_MONGO_URI_MISSING")
	})

	t.Run("yaml file supplies values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"mongo_uri: mongodb://filehost:27017\nmongo_database: testdb\n",
		), 0o600))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "mongodb://filehost:27017", cfg.MongoURI)
		assert.Equal(t, "testdb", cfg.MongoDatabase)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"mongo_uri: mongodb://filehost:27017\n",
		), 0o600))
		t.Setenv("PNL_MONGO_URI", "mongodb://envhost:27017")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "mongodb://envhost:27017", cfg.MongoURI)
	})

	t.Run("unreadable file fails", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "CONFIG_READ_FAILED")
	})
}
