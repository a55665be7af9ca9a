// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

// Package mongodb provides the shared MongoDB client handle.
package mongodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connection bootstrap tuning.
const (
	pingRetryBase = 500 * time.Millisecond
	pingRetryMax  = 5
)

// Client wraps a connected mongo client and the application database.
// The handle is safe for concurrent use and is shared by all
// repositories; no other in-process state is shared between requests.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a connection to MongoDB and verifies it with a
// ping, retrying with exponential backoff while the server comes up.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	if uri == "" {
		return nil, oops.Code("STORE_URI_MISSING").Errorf("mongodb connection string is required")
	}
	if database == "" {
		return nil, oops.Code("STORE_DATABASE_MISSING").Errorf("database name is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, oops.Code("STORE_CONNECT_FAILED").
			With("operation", "connect").
			Wrap(err)
	}

	backoff := retry.WithMaxRetries(pingRetryMax, retry.NewExponential(pingRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := client.Ping(ctx, readpref.Primary()); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(ctx) //nolint:errcheck // Best effort on a dead connection
		return nil, oops.Code("STORE_PING_FAILED").
			With("operation", "ping").
			Wrap(err)
	}

	slog.InfoContext(ctx, "connected to mongodb", "database", database)
	return &Client{client: client, db: client.Database(database)}, nil
}

// Database returns the application database handle.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return oops.Code("STORE_DISCONNECT_FAILED").Wrap(err)
	}
	return nil
}
