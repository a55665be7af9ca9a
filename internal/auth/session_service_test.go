// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelinha/panelinha/internal/auth"
	"github.com/panelinha/panelinha/internal/auth/authtest"
	"github.com/panelinha/panelinha/pkg/errutil"
)

func newSessionService(t *testing.T) (*auth.SessionService, *authtest.MemorySessionRepository) {
	t.Helper()
	sessions := authtest.NewMemorySessionRepository()
	svc, err := auth.NewSessionService(sessions)
	require.NoError(t, err)
	return svc, sessions
}

func TestNewSessionService(t *testing.T) {
	t.Run("rejects nil sessions repository", func(t *testing.T) {
		_, err := auth.NewSessionService(nil)
		assert.Error(t, err)
	})
}

func TestIssue(t *testing.T) {
	ctx := context.Background()
	userID := ulid.Make()

	t.Run("issues session with plaintext token", func(t *testing.T) {
		svc, sessions := newSessionService(t)

		session, token, err := svc.Issue(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, session.UserID)
		assert.Len(t, token, auth.SessionTokenBytes*2)
		// Only the hash is stored, never the plaintext token
		assert.Equal(t, auth.HashSessionToken(token), session.TokenHash)
		assert.Equal(t, 1, sessions.Len())
	})

	t.Run("expiry is seven days out", func(t *testing.T) {
		svc, _ := newSessionService(t)

		session, _, err := svc.Issue(ctx, userID)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(auth.SessionTokenExpiry), session.ExpiresAt, time.Minute)
	})

	t.Run("user may hold concurrent sessions", func(t *testing.T) {
		svc, sessions := newSessionService(t)

		_, token1, err := svc.Issue(ctx, userID)
		require.NoError(t, err)
		_, token2, err := svc.Issue(ctx, userID)
		require.NoError(t, err)

		assert.NotEqual(t, token1, token2)
		assert.Equal(t, 2, sessions.Len())
	})

	t.Run("rejects zero user ID", func(t *testing.T) {
		svc, _ := newSessionService(t)

		_, _, err := svc.Issue(ctx, ulid.ULID{})
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_ISSUE_FAILED")
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		svc, sessions := newSessionService(t)
		sessions.CreateErr = assert.AnError

		_, _, err := svc.Issue(ctx, userID)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_CREATE_FAILED")
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	userID := ulid.Make()

	t.Run("valid token resolves to its session", func(t *testing.T) {
		svc, _ := newSessionService(t)
		issued, token, err := svc.Issue(ctx, userID)
		require.NoError(t, err)

		resolved, err := svc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, issued.ID, resolved.ID)
		assert.Equal(t, userID, resolved.UserID)
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		svc, _ := newSessionService(t)

		_, err := svc.Resolve(ctx, "deadbeef")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_INVALID")
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		svc, _ := newSessionService(t)

		_, err := svc.Resolve(ctx, "")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_TOKEN_EMPTY")
	})

	t.Run("expired session is rejected and lazily reaped", func(t *testing.T) {
		svc, sessions := newSessionService(t)
		_, token, err := svc.Issue(ctx, userID)
		require.NoError(t, err)
		require.True(t, sessions.ForceExpire(auth.HashSessionToken(token), time.Now().Add(-time.Minute)))

		_, err = svc.Resolve(ctx, token)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_EXPIRED")
		assert.Equal(t, 0, sessions.Len())

		// Once expired there is no way back to valid
		_, err = svc.Resolve(ctx, token)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_INVALID")
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		svc, sessions := newSessionService(t)
		sessions.GetErr = assert.AnError

		_, err := svc.Resolve(ctx, "deadbeef")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_RESOLVE_FAILED")
	})
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	userID := ulid.Make()

	t.Run("revoked token no longer resolves", func(t *testing.T) {
		svc, sessions := newSessionService(t)
		_, token, err := svc.Issue(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, token))
		assert.Equal(t, 0, sessions.Len())

		_, err = svc.Resolve(ctx, token)
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_INVALID")
	})

	t.Run("revoking unknown token succeeds", func(t *testing.T) {
		svc, _ := newSessionService(t)
		assert.NoError(t, svc.Revoke(ctx, "deadbeef"))
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		svc, _ := newSessionService(t)
		_, token, err := svc.Issue(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, token))
		assert.NoError(t, svc.Revoke(ctx, token))
	})

	t.Run("empty token is a no-op", func(t *testing.T) {
		svc, _ := newSessionService(t)
		assert.NoError(t, svc.Revoke(ctx, ""))
	})

	t.Run("revoking one session leaves others valid", func(t *testing.T) {
		svc, _ := newSessionService(t)
		_, token1, err := svc.Issue(ctx, userID)
		require.NoError(t, err)
		_, token2, err := svc.Issue(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, svc.Revoke(ctx, token1))

		_, err = svc.Resolve(ctx, token2)
		assert.NoError(t, err)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		svc, sessions := newSessionService(t)
		sessions.DeleteErr = assert.AnError

		err := svc.Revoke(ctx, "deadbeef")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "SESSION_REVOKE_FAILED")
	})
}

func TestPurgeExpired(t *testing.T) {
	ctx := context.Background()

	t.Run("removes only expired sessions", func(t *testing.T) {
		svc, sessions := newSessionService(t)

		_, expired, err := svc.Issue(ctx, ulid.Make())
		require.NoError(t, err)
		_, live, err := svc.Issue(ctx, ulid.Make())
		require.NoError(t, err)
		require.True(t, sessions.ForceExpire(auth.HashSessionToken(expired), time.Now().Add(-time.Hour)))

		count, err := svc.PurgeExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		_, err = svc.Resolve(ctx, live)
		assert.NoError(t, err)
	})
}
