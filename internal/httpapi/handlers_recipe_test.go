// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package httpapi_test

import (
	"net/http"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recipeJSON struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Ingredients string `json:"ingredients"`
	Preparation string `json:"preparation"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func TestCreateRecipe(t *testing.T) {
	t.Run("stores recipe owned by the caller", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")

		rec := ts.do(http.MethodPost, "/receitas", token, map[string]string{
			"title": "Feijoada", "ingredients": "beans, pork", "preparation": "cook slowly",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp recipeJSON
		ts.decode(rec, &resp)
		assert.NotEmpty(t, resp.ID)
		assert.NotEmpty(t, resp.UserID)
		assert.Equal(t, "Feijoada", resp.Title)
		assert.Equal(t, "beans, pork", resp.Ingredients)
		assert.Equal(t, "cook slowly", resp.Preparation)
		assert.NotEmpty(t, resp.CreatedAt)
		assert.Equal(t, 1, ts.recipes.Len())
	})

	t.Run("requires authentication", func(t *testing.T) {
		ts := newTestServer(t)

		rec := ts.do(http.MethodPost, "/receitas", "", map[string]string{
			"title": "Feijoada", "ingredients": "beans", "preparation": "cook",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, 0, ts.recipes.Len())
	})

	t.Run("missing fields return 422", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")

		rec := ts.do(http.MethodPost, "/receitas", token, map[string]string{
			"title": "Feijoada",
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp struct {
			Errors []string `json:"errors"`
		}
		ts.decode(rec, &resp)
		assert.Contains(t, resp.Errors, "ingredients is required")
		assert.Contains(t, resp.Errors, "preparation is required")
		assert.Equal(t, 0, ts.recipes.Len())
	})
}

func TestListRecipes(t *testing.T) {
	t.Run("public listing needs no session", func(t *testing.T) {
		ts := newTestServer(t)
		anaToken := ts.register("Ana", "ana@example.com", "secret123")
		beaToken := ts.register("Bea", "bea@example.com", "secret456")
		ts.createRecipe(anaToken, "Feijoada")
		ts.createRecipe(beaToken, "Moqueca")

		rec := ts.do(http.MethodGet, "/receitas", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []recipeJSON
		ts.decode(rec, &resp)
		assert.Len(t, resp, 2)
	})

	t.Run("empty store lists an empty array", func(t *testing.T) {
		ts := newTestServer(t)

		rec := ts.do(http.MethodGet, "/receitas", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestListMyRecipes(t *testing.T) {
	t.Run("returns only the caller's recipes", func(t *testing.T) {
		ts := newTestServer(t)
		anaToken := ts.register("Ana", "ana@example.com", "secret123")
		beaToken := ts.register("Bea", "bea@example.com", "secret456")
		mineID := ts.createRecipe(anaToken, "Feijoada")
		ts.createRecipe(beaToken, "Moqueca")

		rec := ts.do(http.MethodGet, "/me/receitas", anaToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []recipeJSON
		ts.decode(rec, &resp)
		require.Len(t, resp, 1)
		assert.Equal(t, mineID, resp[0].ID)
	})

	t.Run("no recipes yields an empty array", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")

		rec := ts.do(http.MethodGet, "/me/receitas", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestGetRecipe(t *testing.T) {
	t.Run("owner fetches own recipe", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")
		id := ts.createRecipe(token, "Feijoada")

		rec := ts.do(http.MethodGet, "/receitas/"+id, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp recipeJSON
		ts.decode(rec, &resp)
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, "Feijoada", resp.Title)
	})

	t.Run("foreign recipe returns 404", func(t *testing.T) {
		ts := newTestServer(t)
		anaToken := ts.register("Ana", "ana@example.com", "secret123")
		beaToken := ts.register("Bea", "bea@example.com", "secret456")
		id := ts.createRecipe(anaToken, "Feijoada")

		rec := ts.do(http.MethodGet, "/receitas/"+id, beaToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("nonexistent recipe returns 404", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")

		rec := ts.do(http.MethodGet, "/receitas/"+ulid.Make().String(), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")

		rec := ts.do(http.MethodGet, "/receitas/not-a-ulid", token, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"invalid recipe id"}`, rec.Body.String())
	})

	t.Run("requires authentication", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")
		id := ts.createRecipe(token, "Feijoada")

		rec := ts.do(http.MethodGet, "/receitas/"+id, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDeleteRecipe(t *testing.T) {
	t.Run("owner deletes own recipe", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")
		id := ts.createRecipe(token, "Feijoada")

		rec := ts.do(http.MethodDelete, "/receitas/"+id, token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 0, ts.recipes.Len())
	})

	t.Run("foreign recipe returns 404 and survives", func(t *testing.T) {
		ts := newTestServer(t)
		anaToken := ts.register("Ana", "ana@example.com", "secret123")
		beaToken := ts.register("Bea", "bea@example.com", "secret456")
		id := ts.createRecipe(anaToken, "Feijoada")

		rec := ts.do(http.MethodDelete, "/receitas/"+id, beaToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, 1, ts.recipes.Len())
	})

	t.Run("deleted recipe vanishes from the public listing", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")
		id := ts.createRecipe(token, "Feijoada")

		rec := ts.do(http.MethodDelete, "/receitas/"+id, token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = ts.do(http.MethodGet, "/receitas", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")

		rec := ts.do(http.MethodDelete, "/receitas/not-a-ulid", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		ts := newTestServer(t)
		token := ts.register("Ana", "ana@example.com", "secret123")
		id := ts.createRecipe(token, "Feijoada")

		rec := ts.do(http.MethodDelete, "/receitas/"+id, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, 1, ts.recipes.Len())
	})
}
