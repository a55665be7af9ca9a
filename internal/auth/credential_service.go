// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// dummyPasswordHash is used when a user doesn't exist to prevent timing attacks.
// We still run password verification to make response time consistent.
// This is NOT a real credential - it's a fake hash that will never be issued.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CredentialService provides registration and password authentication.
type CredentialService struct {
	users  UserRepository
	hasher PasswordHasher
	logger *slog.Logger
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(users UserRepository, hasher PasswordHasher) (*CredentialService, error) {
	return NewCredentialServiceWithLogger(users, hasher, slog.Default())
}

// NewCredentialServiceWithLogger creates a new CredentialService with an explicit logger.
func NewCredentialServiceWithLogger(users UserRepository, hasher PasswordHasher, logger *slog.Logger) (*CredentialService, error) {
	if users == nil {
		return nil, oops.Errorf("users repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &CredentialService{users: users, hasher: hasher, logger: logger}, nil
}

// Register creates a new user with a hashed password.
// Fails with code AUTH_EMAIL_TAKEN if the email is already registered;
// concurrent registrations for the same email are serialized by the
// store's unique index, so exactly one succeeds.
func (s *CredentialService) Register(ctx context.Context, name, email, password string) (*User, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(name, email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, oops.Code("AUTH_EMAIL_TAKEN").Errorf("email is already registered")
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "persist user").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID.String())
	return user, nil
}

// Authenticate verifies an email and password pair and returns the user.
// Unknown email and wrong password produce the same AUTH_INVALID_CREDENTIALS
// error so the response cannot be used for account enumeration.
// Uses constant-time operations to keep the two paths indistinguishable.
func (s *CredentialService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, lookupErr := s.users.GetByEmail(ctx, email)

	// Determine which hash to verify against (real or dummy for timing attack prevention)
	var targetHash string
	var userExists bool

	if lookupErr != nil {
		if errors.Is(lookupErr, ErrNotFound) {
			// Use dummy hash - still perform verification to maintain constant time
			targetHash = dummyPasswordHash
			userExists = false
		} else {
			return nil, oops.Code("AUTH_AUTHENTICATE_FAILED").
				With("operation", "get user by email").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	// Always verify password (constant-time operation for timing attack prevention)
	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		// For dummy hash verification errors, just treat as invalid
		if !userExists {
			return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid email or password")
		}
		return nil, oops.Code("AUTH_AUTHENTICATE_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}

	// If user doesn't exist OR password invalid, return same error
	if !userExists || !valid {
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid email or password")
	}

	s.logger.InfoContext(ctx, "user authenticated", "user_id", user.ID.String())
	return user, nil
}
