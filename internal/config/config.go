// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

// Package config loads application configuration from the environment
// and an optional yaml file.
package config

import (
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration. Every field can be supplied
// via a PNL_-prefixed environment variable (PNL_MONGO_URI,
// PNL_LISTEN_ADDR, ...) or a yaml config file; the environment wins.
type Config struct {
	// MongoURI is the MongoDB connection string. Required.
	MongoURI string `mapstructure:"mongo_uri"`

	// MongoDatabase is the database name holding the application collections.
	MongoDatabase string `mapstructure:"mongo_database"`

	// ListenAddr is the HTTP API listen address.
	ListenAddr string `mapstructure:"listen_addr"`

	// ObservabilityAddr is the metrics/health listen address.
	ObservabilityAddr string `mapstructure:"observability_addr"`

	// LogFormat is "json" or "text".
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration. If path is non-empty, that yaml file is
// read first; environment variables override file values. A .env file
// in the working directory is loaded into the environment when present.
func Load(path string) (*Config, error) {
	// Missing .env is the normal production case
	_ = godotenv.Load() //nolint:errcheck

	v := viper.New()

	v.SetDefault("mongo_database", "panelinha")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("observability_addr", "127.0.0.1:9100")
	v.SetDefault("log_format", "json")

	v.SetEnvPrefix("PNL")
	v.AutomaticEnv()
	// AutomaticEnv only resolves known keys on Unmarshal; bind the one
	// key that has no default so PNL_MONGO_URI is picked up.
	if err := v.BindEnv("mongo_uri"); err != nil {
		return nil, oops.Code("CONFIG_BIND_FAILED").Wrap(err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, oops.Code("CONFIG_READ_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if cfg.MongoURI == "" {
		return nil, oops.Code("CONFIG_MONGO_URI_MISSING").
			Errorf("mongodb connection string is required (set PNL_MONGO_URI)")
	}

	return &cfg, nil
}
