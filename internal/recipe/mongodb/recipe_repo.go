// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

// Package mongodb implements the recipe repository over MongoDB.
package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/panelinha/panelinha/internal/recipe"
)

const recipesCollection = "recipes"

// recipeDocument is the persisted shape of a recipe.Recipe.
type recipeDocument struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id"`
	Title       string    `bson:"title"`
	Ingredients string    `bson:"ingredients"`
	Preparation string    `bson:"preparation"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toRecipeDocument(rec *recipe.Recipe) recipeDocument {
	return recipeDocument{
		ID:          rec.ID.String(),
		OwnerID:     rec.OwnerID.String(),
		Title:       rec.Title,
		Ingredients: rec.Ingredients,
		Preparation: rec.Preparation,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func (d recipeDocument) toRecipe() (*recipe.Recipe, error) {
	id, err := ulid.Parse(d.ID)
	if err != nil {
		return nil, oops.Code("RECIPE_DECODE_FAILED").
			With("operation", "parse recipe id").
			With("id", d.ID).
			Wrap(err)
	}
	ownerID, err := ulid.Parse(d.OwnerID)
	if err != nil {
		return nil, oops.Code("RECIPE_DECODE_FAILED").
			With("operation", "parse recipe owner id").
			With("owner_id", d.OwnerID).
			Wrap(err)
	}
	return &recipe.Recipe{
		ID:          id,
		OwnerID:     ownerID,
		Title:       d.Title,
		Ingredients: d.Ingredients,
		Preparation: d.Preparation,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// Repository implements recipe.Repository using MongoDB.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository creates a new Repository.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{coll: db.Collection(recipesCollection)}
}

// Create stores a new recipe.
func (r *Repository) Create(ctx context.Context, rec *recipe.Recipe) error {
	_, err := r.coll.InsertOne(ctx, toRecipeDocument(rec))
	if err != nil {
		return oops.Code("RECIPE_CREATE_FAILED").
			With("operation", "insert recipe").
			With("owner_id", rec.OwnerID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a recipe by ID regardless of owner.
func (r *Repository) GetByID(ctx context.Context, id ulid.ULID) (*recipe.Recipe, error) {
	var doc recipeDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, oops.Code("RECIPE_NOT_FOUND").
			With("id", id.String()).
			Wrap(recipe.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("RECIPE_GET_BY_ID_FAILED").
			With("operation", "get recipe by id").
			With("id", id.String()).
			Wrap(err)
	}
	return doc.toRecipe()
}

// ListAll retrieves every recipe, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]*recipe.Recipe, error) {
	return r.list(ctx, bson.M{})
}

// ListByOwner retrieves all recipes owned by a user, newest first.
// Served by the secondary index on owner_id.
func (r *Repository) ListByOwner(ctx context.Context, ownerID ulid.ULID) ([]*recipe.Recipe, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID.String()})
}

func (r *Repository) list(ctx context.Context, filter bson.M) ([]*recipe.Recipe, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, oops.Code("RECIPE_LIST_FAILED").
			With("operation", "find recipes").
			Wrap(err)
	}
	defer cursor.Close(ctx)

	var recipes []*recipe.Recipe
	for cursor.Next(ctx) {
		var doc recipeDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, oops.Code("RECIPE_DECODE_FAILED").
				With("operation", "decode recipe document").
				Wrap(err)
		}
		rec, err := doc.toRecipe()
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}

	if err := cursor.Err(); err != nil {
		return nil, oops.Code("RECIPE_CURSOR_FAILED").
			With("operation", "iterate recipe cursor").
			Wrap(err)
	}

	return recipes, nil
}

// Delete removes a recipe by ID.
func (r *Repository) Delete(ctx context.Context, id ulid.ULID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return oops.Code("RECIPE_DELETE_FAILED").
			With("operation", "delete recipe").
			With("id", id.String()).
			Wrap(err)
	}
	if res.DeletedCount == 0 {
		return oops.Code("RECIPE_NOT_FOUND").
			With("id", id.String()).
			Wrap(recipe.ErrNotFound)
	}
	return nil
}

// EnsureIndexes creates the secondary index on owner_id used by the
// owner-scoped listing.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(recipesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	if err != nil {
		return oops.Code("INDEX_CREATE_FAILED").
			With("collection", recipesCollection).
			With("index", "owner_id").
			Wrap(err)
	}
	return nil
}
