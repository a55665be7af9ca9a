// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package recipe

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Service provides owner-scoped recipe operations plus the public listing.
type Service struct {
	recipes Repository
	logger  *slog.Logger
}

// NewService creates a new Service.
func NewService(recipes Repository) (*Service, error) {
	return NewServiceWithLogger(recipes, slog.Default())
}

// NewServiceWithLogger creates a new Service with an explicit logger.
func NewServiceWithLogger(recipes Repository, logger *slog.Logger) (*Service, error) {
	if recipes == nil {
		return nil, oops.Errorf("recipes repository is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Service{recipes: recipes, logger: logger}, nil
}

// Create stores a new recipe owned by the given user.
func (s *Service) Create(ctx context.Context, ownerID ulid.ULID, title, ingredients, preparation string) (*Recipe, error) {
	rec, err := NewRecipe(ownerID, title, ingredients, preparation)
	if err != nil {
		return nil, err
	}

	if err := s.recipes.Create(ctx, rec); err != nil {
		return nil, oops.Code("RECIPE_CREATE_FAILED").
			With("operation", "persist recipe").
			With("owner_id", ownerID.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "recipe created",
		"recipe_id", rec.ID.String(),
		"owner_id", ownerID.String())
	return rec, nil
}

// ListAll returns every recipe. This is the public, unauthenticated view.
func (s *Service) ListAll(ctx context.Context) ([]*Recipe, error) {
	recs, err := s.recipes.ListAll(ctx)
	if err != nil {
		return nil, oops.Code("RECIPE_LIST_FAILED").
			With("operation", "list all recipes").
			Wrap(err)
	}
	return recs, nil
}

// ListByOwner returns all recipes owned by the given user.
func (s *Service) ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*Recipe, error) {
	recs, err := s.recipes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, oops.Code("RECIPE_LIST_FAILED").
			With("operation", "list recipes by owner").
			With("owner_id", ownerID.String()).
			Wrap(err)
	}
	return recs, nil
}

// GetForOwner retrieves a recipe only if it is owned by the given user.
// A recipe owned by someone else is reported as RECIPE_NOT_FOUND,
// identically to a recipe that does not exist.
func (s *Service) GetForOwner(ctx context.Context, ownerID, id ulid.ULID) (*Recipe, error) {
	rec, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("RECIPE_NOT_FOUND").Errorf("recipe not found")
		}
		return nil, oops.Code("RECIPE_GET_FAILED").
			With("operation", "get recipe by id").
			With("recipe_id", id.String()).
			Wrap(err)
	}

	if rec.OwnerID.Compare(ownerID) != 0 {
		return nil, oops.Code("RECIPE_NOT_FOUND").Errorf("recipe not found")
	}

	return rec, nil
}

// DeleteForOwner removes a recipe only if it is owned by the given user.
// Foreign and nonexistent recipes produce the same RECIPE_NOT_FOUND error.
func (s *Service) DeleteForOwner(ctx context.Context, ownerID, id ulid.ULID) error {
	if _, err := s.GetForOwner(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.recipes.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Raced with another delete of the same record
			return oops.Code("RECIPE_NOT_FOUND").Errorf("recipe not found")
		}
		return oops.Code("RECIPE_DELETE_FAILED").
			With("operation", "delete recipe").
			With("recipe_id", id.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "recipe deleted",
		"recipe_id", id.String(),
		"owner_id", ownerID.String())
	return nil
}
