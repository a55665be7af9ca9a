// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

// Package recipetest provides in-memory test doubles for the recipe repository.
package recipetest

import (
	"context"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/panelinha/panelinha/internal/recipe"
)

// MemoryRepository is a recipe.Repository backed by a map.
type MemoryRepository struct {
	mu   sync.Mutex
	byID map[ulid.ULID]*recipe.Recipe

	// Err, when set, is returned by every operation.
	Err error
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[ulid.ULID]*recipe.Recipe)}
}

// Create implements recipe.Repository.
func (r *MemoryRepository) Create(_ context.Context, rec *recipe.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	c := *rec
	r.byID[c.ID] = &c
	return nil
}

// GetByID implements recipe.Repository.
func (r *MemoryRepository) GetByID(_ context.Context, id ulid.ULID) (*recipe.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	rec, ok := r.byID[id]
	if !ok {
		return nil, recipe.ErrNotFound
	}
	c := *rec
	return &c, nil
}

// ListAll implements recipe.Repository.
func (r *MemoryRepository) ListAll(_ context.Context) ([]*recipe.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return r.collect(func(*recipe.Recipe) bool { return true }), nil
}

// ListByOwner implements recipe.Repository.
func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID ulid.ULID) ([]*recipe.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return r.collect(func(rec *recipe.Recipe) bool {
		return rec.OwnerID.Compare(ownerID) == 0
	}), nil
}

// Delete implements recipe.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.byID[id]; !ok {
		return recipe.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Len returns the number of stored recipes.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// collect returns copies of matching recipes, newest first.
// Caller must hold the lock.
func (r *MemoryRepository) collect(match func(*recipe.Recipe) bool) []*recipe.Recipe {
	var out []*recipe.Recipe
	for _, rec := range r.byID {
		if match(rec) {
			c := *rec
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
