// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// Context keys for values attached by the auth guard.
const (
	ContextUserIDKey = "auth.user_id"
	ContextTokenKey  = "auth.token"
)

// requestLogger logs each request and records the request metric.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		s.metrics.RecordRequest(c.FullPath(), c.Request.Method, status)
		s.logger.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// authRequired is the authentication guard. It extracts the bearer
// token, resolves it to a session, and attaches the user id and the
// presented token to the request context. Missing, malformed, unknown,
// and expired tokens all produce the same generic 401 so the response
// reveals nothing about why authentication failed. The guard holds no
// state of its own and never touches storage directly.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthenticated(c)
			return
		}

		session, err := s.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		// The raw token is kept so sign-out can revoke exactly the
		// session that was presented.
		c.Set(ContextUserIDKey, session.UserID)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// bearerToken parses an Authorization header value. The "Bearer"
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
}

// userID returns the authenticated user's id from the request context.
// Only meaningful on routes behind authRequired.
func userID(c *gin.Context) (ulid.ULID, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return ulid.ULID{}, false
	}
	id, ok := v.(ulid.ULID)
	return id, ok
}

// sessionToken returns the presented bearer token from the request context.
func sessionToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextTokenKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}
