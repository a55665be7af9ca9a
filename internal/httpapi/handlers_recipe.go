// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/panelinha/panelinha/internal/recipe"
)

type createRecipeRequest struct {
	Title       string `json:"title" binding:"required"`
	Ingredients string `json:"ingredients" binding:"required"`
	Preparation string `json:"preparation" binding:"required"`
}

type recipeResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Ingredients string    `json:"ingredients"`
	Preparation string    `json:"preparation"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toRecipeResponse(rec *recipe.Recipe) recipeResponse {
	return recipeResponse{
		ID:          rec.ID.String(),
		UserID:      rec.OwnerID.String(),
		Title:       rec.Title,
		Ingredients: rec.Ingredients,
		Preparation: rec.Preparation,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func toRecipeResponses(recs []*recipe.Recipe) []recipeResponse {
	out := make([]recipeResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecipeResponse(rec))
	}
	return out
}

// recipeID parses the :id route parameter. A malformed id is rejected
// with 400 before any store access.
func (s *Server) recipeID(c *gin.Context) (ulid.ULID, bool) {
	id, err := ulid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return ulid.ULID{}, false
	}
	return id, true
}

// handleListRecipes is the public, unauthenticated listing of all recipes.
func (s *Server) handleListRecipes(c *gin.Context) {
	recs, err := s.recipes.ListAll(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponses(recs))
}

// handleListMyRecipes lists the caller's own recipes.
func (s *Server) handleListMyRecipes(c *gin.Context) {
	owner, ok := userID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	recs, err := s.recipes.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponses(recs))
}

// handleGetRecipe fetches one of the caller's recipes. A recipe owned
// by another user is reported as 404, identically to one that does not
// exist.
func (s *Server) handleGetRecipe(c *gin.Context) {
	owner, ok := userID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	id, ok := s.recipeID(c)
	if !ok {
		return
	}

	rec, err := s.recipes.GetForOwner(c.Request.Context(), owner, id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponse(rec))
}

// handleCreateRecipe stores a new recipe owned by the caller.
func (s *Server) handleCreateRecipe(c *gin.Context) {
	owner, ok := userID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeValidationError(c, err)
		return
	}

	rec, err := s.recipes.Create(c.Request.Context(), owner, req.Title, req.Ingredients, req.Preparation)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRecipeResponse(rec))
}

// handleDeleteRecipe removes one of the caller's recipes.
func (s *Server) handleDeleteRecipe(c *gin.Context) {
	owner, ok := userID(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}
	id, ok := s.recipeID(c)
	if !ok {
		return
	}

	if err := s.recipes.DeleteForOwner(c.Request.Context(), owner, id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
