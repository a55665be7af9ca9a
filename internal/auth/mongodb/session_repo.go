// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/panelinha/panelinha/internal/auth"
)

const sessionsCollection = "sessions"

// sessionDocument is the persisted shape of an auth.Session. Only the
// SHA256 token hash is stored; the plaintext token never reaches the
// database.
type sessionDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	TokenHash string    `bson:"token_hash"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func toSessionDocument(session *auth.Session) sessionDocument {
	return sessionDocument{
		ID:        session.ID.String(),
		UserID:    session.UserID.String(),
		TokenHash: session.TokenHash,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
}

func (d sessionDocument) toSession() (*auth.Session, error) {
	id, err := ulid.Parse(d.ID)
	if err != nil {
		return nil, oops.Code("SESSION_DECODE_FAILED").
			With("operation", "parse session id").
			With("id", d.ID).
			Wrap(err)
	}
	userID, err := ulid.Parse(d.UserID)
	if err != nil {
		return nil, oops.Code("SESSION_DECODE_FAILED").
			With("operation", "parse session user id").
			With("user_id", d.UserID).
			Wrap(err)
	}
	return &auth.Session{
		ID:        id,
		UserID:    userID,
		TokenHash: d.TokenHash,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}, nil
}

// SessionRepository implements auth.SessionRepository using MongoDB.
type SessionRepository struct {
	coll *mongo.Collection
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionsCollection)}
}

// Create stores a new session.
func (r *SessionRepository) Create(ctx context.Context, session *auth.Session) error {
	_, err := r.coll.InsertOne(ctx, toSessionDocument(session))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return oops.Code("SESSION_TOKEN_COLLISION").
				With("operation", "insert session").
				Wrap(auth.ErrDuplicate)
		}
		return oops.Code("SESSION_CREATE_FAILED").
			With("operation", "insert session").
			With("user_id", session.UserID.String()).
			Wrap(err)
	}
	return nil
}

// GetByTokenHash retrieves a session by its token hash. An expired
// session that the TTL reaper has not removed yet is still returned;
// the service layer owns the expiry check.
func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*auth.Session, error) {
	var doc sessionDocument
	err := r.coll.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, oops.Code("SESSION_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("SESSION_GET_BY_TOKEN_FAILED").
			With("operation", "get session by token hash").
			Wrap(err)
	}
	return doc.toSession()
}

// DeleteByTokenHash removes the session with the given token hash.
func (r *SessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"token_hash": tokenHash})
	if err != nil {
		return oops.Code("SESSION_DELETE_FAILED").
			With("operation", "delete session by token hash").
			Wrap(err)
	}
	if res.DeletedCount == 0 {
		return oops.Code("SESSION_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	return nil
}

// DeleteExpired removes all sessions whose expiry is in the past and
// returns the count of deleted records. The TTL index on expires_at
// performs the same cleanup passively.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": time.Now()}})
	if err != nil {
		return 0, oops.Code("SESSION_DELETE_EXPIRED_FAILED").
			With("operation", "delete expired sessions").
			Wrap(err)
	}
	return res.DeletedCount, nil
}
