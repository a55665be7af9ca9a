// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package mongodb

import (
	"context"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the auth collections rely on:
//   - users: unique index on email (serializes concurrent sign-ups)
//   - sessions: unique index on token_hash
//   - sessions: TTL index on expires_at (passive reaping of expired
//     sessions once the timestamp is in the past)
//
// Index creation is idempotent; existing indexes are left untouched.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return oops.Code("INDEX_CREATE_FAILED").
			With("collection", usersCollection).
			With("index", "email unique").
			Wrap(err)
	}

	_, err = db.Collection(sessionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		return oops.Code("INDEX_CREATE_FAILED").
			With("collection", sessionsCollection).
			Wrap(err)
	}

	return nil
}
