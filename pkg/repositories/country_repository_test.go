package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affiche-works/affiche-engine/pkg/apperrors"
	"github.com/affiche-works/affiche-engine/pkg/models"
	"github.com/affiche-works/affiche-engine/pkg/testhelpers"
)

func TestCountryRepository(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewCountryRepository(db.Pool)
	ctx := context.Background()

	t.Run("create assigns sequential display order", func(t *testing.T) {
		first := &models.Country{Name: "France", Code: strPtr("FR")}
		require.NoError(t, repo.Create(ctx, first))

		second := &models.Country{Name: "Italy", Code: strPtr("IT")}
		require.NoError(t, repo.Create(ctx, second))

		assert.Equal(t, first.DisplayOrder+1, second.DisplayOrder)
	})

	t.Run("find matches name or code case-insensitively", func(t *testing.T) {
		byName, err := repo.FindByNameOrCode(ctx, "FRANCE", "")
		require.NoError(t, err)
		assert.Equal(t, "France", byName.Name)

		byCode, err := repo.FindByNameOrCode(ctx, "Frankreich", "fr")
		require.NoError(t, err)
		assert.Equal(t, "France", byCode.Name)
	})

	t.Run("missing country returns ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByNameOrCode(ctx, "Atlantis", "")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("duplicate name reports conflict", func(t *testing.T) {
		err := repo.Create(ctx, &models.Country{Name: "france"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}
