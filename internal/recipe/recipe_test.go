// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Panelinha Contributors

package recipe_test

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelinha/panelinha/internal/recipe"
	"github.com/panelinha/panelinha/pkg/errutil"
)

func TestNewRecipe(t *testing.T) {
	ownerID := ulid.Make()

	t.Run("creates recipe with fresh ID", func(t *testing.T) {
		rec, err := recipe.NewRecipe(ownerID, "Feijoada", "beans, pork", "cook slowly")
		require.NoError(t, err)
		assert.NotEqual(t, ulid.ULID{}, rec.ID)
		assert.Equal(t, ownerID, rec.OwnerID)
		assert.Equal(t, "Feijoada", rec.Title)
		assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	})

	t.Run("rejects invalid fields", func(t *testing.T) {
		tests := []struct {
			name        string
			ownerID     ulid.ULID
			title       string
			ingredients string
			preparation string
		}{
			{name: "zero owner", ownerID: ulid.ULID{}, title: "t", ingredients: "i", preparation: "p"},
			{name: "empty title", ownerID: ownerID, ingredients: "i", preparation: "p"},
			{name: "empty ingredients", ownerID: ownerID, title: "t", preparation: "p"},
			{name: "empty preparation", ownerID: ownerID, title: "t", ingredients: "i"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := recipe.NewRecipe(tt.ownerID, tt.title, tt.ingredients, tt.preparation)
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, "RECIPE_INVALID")
			})
		}
	})
}
