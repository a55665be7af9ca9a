// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

// Package recipe provides the recipe domain: owner-scoped recipe
// records with a public read-only listing.
package recipe

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested recipe does not exist.
// An ownership mismatch is reported identically so existence of other
// users' recipes is never leaked.
var ErrNotFound = errors.New("not found")

// Recipe represents a user-owned recipe record.
type Recipe struct {
	ID          ulid.ULID
	OwnerID     ulid.ULID
	Title       string
	Ingredients string
	Preparation string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRecipe creates a validated Recipe with a fresh ID.
func NewRecipe(ownerID ulid.ULID, title, ingredients, preparation string) (*Recipe, error) {
	if ownerID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("RECIPE_INVALID").Errorf("owner ID cannot be zero")
	}
	if title == "" {
		return nil, oops.Code("RECIPE_INVALID").Errorf("title cannot be empty")
	}
	if ingredients == "" {
		return nil, oops.Code("RECIPE_INVALID").Errorf("ingredients cannot be empty")
	}
	if preparation == "" {
		return nil, oops.Code("RECIPE_INVALID").Errorf("preparation cannot be empty")
	}

	now := time.Now()
	return &Recipe{
		ID:          ulid.Make(),
		OwnerID:     ownerID,
		Title:       title,
		Ingredients: ingredients,
		Preparation: preparation,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Repository manages recipe persistence.
type Repository interface {
	// Create stores a new recipe.
	Create(ctx context.Context, rec *Recipe) error

	// GetByID retrieves a recipe by ID regardless of owner.
	// Wraps ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Recipe, error)

	// ListAll retrieves every recipe, newest first.
	ListAll(ctx context.Context) ([]*Recipe, error)

	// ListByOwner retrieves all recipes owned by a user, newest first.
	ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*Recipe, error)

	// Delete removes a recipe by ID. Wraps ErrNotFound if absent.
	Delete(ctx context.Context, id ulid.ULID) error
}
