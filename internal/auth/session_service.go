// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// SessionService provides session issuance, resolution, and revocation.
type SessionService struct {
	sessions SessionRepository
	logger   *slog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(sessions SessionRepository) (*SessionService, error) {
	return NewSessionServiceWithLogger(sessions, slog.Default())
}

// NewSessionServiceWithLogger creates a new SessionService with an explicit logger.
func NewSessionServiceWithLogger(sessions SessionRepository, logger *slog.Logger) (*SessionService, error) {
	if sessions == nil {
		return nil, oops.Errorf("sessions repository is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &SessionService{sessions: sessions, logger: logger}, nil
}

// Issue creates a session for the user and returns it with the
// plaintext token. A user may hold any number of concurrent sessions.
func (s *SessionService) Issue(ctx context.Context, userID ulid.ULID) (*Session, string, error) {
	token, tokenHash, err := GenerateSessionToken()
	if err != nil {
		return nil, "", oops.Code("SESSION_ISSUE_FAILED").
			With("operation", "generate session token").
			Wrap(err)
	}

	expiresAt := time.Now().Add(SessionTokenExpiry)
	session, err := NewSession(userID, tokenHash, expiresAt)
	if err != nil {
		return nil, "", oops.Code("SESSION_ISSUE_FAILED").
			With("operation", "create session").
			Wrap(err)
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, "", oops.Code("SESSION_CREATE_FAILED").
			With("operation", "persist session").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "session issued",
		"session_id", session.ID.String(),
		"user_id", userID.String(),
		"expires_at", expiresAt)
	return session, token, nil
}

// Resolve validates a session token and returns the session if valid.
// A session found with its expiry in the past is treated as invalid even
// if the store has not yet reaped it; such a session is lazily removed.
func (s *SessionService) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, oops.Code("SESSION_TOKEN_EMPTY").Errorf("session token cannot be empty")
	}

	// Hash the token to look it up
	tokenHash := HashSessionToken(token)

	session, err := s.sessions.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("SESSION_INVALID").Errorf("invalid session token")
		}
		return nil, oops.Code("SESSION_RESOLVE_FAILED").
			With("operation", "get session by token hash").
			Wrap(err)
	}

	if session.IsExpired() {
		// Lazy reap; the TTL index will catch it anyway
		_ = s.sessions.DeleteByTokenHash(ctx, tokenHash) //nolint:errcheck // Best effort
		return nil, oops.Code("SESSION_EXPIRED").Errorf("session has expired")
	}

	return session, nil
}

// Revoke deletes the session matching the token. Revoking a nonexistent
// or already-revoked token is not an error; logout always succeeds from
// the caller's point of view.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	tokenHash := HashSessionToken(token)

	err := s.sessions.DeleteByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return oops.Code("SESSION_REVOKE_FAILED").
			With("operation", "delete session").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "session revoked")
	return nil
}

// PurgeExpired removes all expired sessions from the store and returns
// the count of deleted records.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	count, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, oops.Code("SESSION_PURGE_FAILED").
			With("operation", "delete expired sessions").
			Wrap(err)
	}
	if count > 0 {
		s.logger.InfoContext(ctx, "expired sessions purged", "count", count)
	}
	return count, nil
}
