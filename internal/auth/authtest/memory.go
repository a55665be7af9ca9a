// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

// Package authtest provides in-memory test doubles for auth repositories.
package authtest

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/panelinha/panelinha/internal/auth"
)

// MemoryUserRepository is an auth.UserRepository backed by maps.
// It enforces email uniqueness the way the real store's unique index does.
type MemoryUserRepository struct {
	mu      sync.Mutex
	byID    map[ulid.ULID]*auth.User
	byEmail map[string]*auth.User

	// CreateErr, when set, is returned by Create instead of storing.
	CreateErr error
	// GetErr, when set, is returned by GetByID and GetByEmail.
	GetErr error
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[ulid.ULID]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

// Create implements auth.UserRepository.
func (r *MemoryUserRepository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return auth.ErrDuplicate
	}

	u := *user
	r.byID[u.ID] = &u
	r.byEmail[u.Email] = &u
	return nil
}

// GetByID implements auth.UserRepository.
func (r *MemoryUserRepository) GetByID(_ context.Context, id ulid.ULID) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GetErr != nil {
		return nil, r.GetErr
	}
	user, ok := r.byID[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	u := *user
	return &u, nil
}

// GetByEmail implements auth.UserRepository.
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GetErr != nil {
		return nil, r.GetErr
	}
	user, ok := r.byEmail[email]
	if !ok {
		return nil, auth.ErrNotFound
	}
	u := *user
	return &u, nil
}

// Len returns the number of stored users.
func (r *MemoryUserRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// MemorySessionRepository is an auth.SessionRepository backed by a map
// keyed by token hash. Expired sessions are NOT filtered on lookup,
// mirroring a store whose TTL reaper has not run yet.
type MemorySessionRepository struct {
	mu         sync.Mutex
	byTokenHash map[string]*auth.Session

	// CreateErr, when set, is returned by Create instead of storing.
	CreateErr error
	// GetErr, when set, is returned by GetByTokenHash.
	GetErr error
	// DeleteErr, when set, is returned by DeleteByTokenHash.
	DeleteErr error
}

// NewMemorySessionRepository creates an empty MemorySessionRepository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		byTokenHash: make(map[string]*auth.Session),
	}
}

// Create implements auth.SessionRepository.
func (r *MemorySessionRepository) Create(_ context.Context, session *auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	if _, exists := r.byTokenHash[session.TokenHash]; exists {
		return auth.ErrDuplicate
	}

	s := *session
	r.byTokenHash[s.TokenHash] = &s
	return nil
}

// GetByTokenHash implements auth.SessionRepository.
func (r *MemorySessionRepository) GetByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GetErr != nil {
		return nil, r.GetErr
	}
	session, ok := r.byTokenHash[tokenHash]
	if !ok {
		return nil, auth.ErrNotFound
	}
	s := *session
	return &s, nil
}

// DeleteByTokenHash implements auth.SessionRepository.
func (r *MemorySessionRepository) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	if _, ok := r.byTokenHash[tokenHash]; !ok {
		return auth.ErrNotFound
	}
	delete(r.byTokenHash, tokenHash)
	return nil
}

// DeleteExpired implements auth.SessionRepository.
func (r *MemorySessionRepository) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var count int64
	for hash, session := range r.byTokenHash {
		if now.After(session.ExpiresAt) {
			delete(r.byTokenHash, hash)
			count++
		}
	}
	return count, nil
}

// ForceExpire rewrites the expiry of the session with the given token
// hash to the given time. Used to simulate a session whose expiry has
// passed without waiting.
func (r *MemorySessionRepository) ForceExpire(tokenHash string, expiresAt time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.byTokenHash[tokenHash]
	if !ok {
		return false
	}
	session.ExpiresAt = expiresAt
	return true
}

// Len returns the number of stored sessions.
func (r *MemorySessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byTokenHash)
}
