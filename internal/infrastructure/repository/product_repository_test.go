package repository

import (
	"context"
	"testing"

	domainRepo "github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_DecrementStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	umkm := createUmkm(t, db)

	t.Run("decrements when sufficient", func(t *testing.T) {
		product := createProduct(t, db, umkm.ID, "Gula Pasir", 10)

		ok, err := repo.DecrementStock(ctx, product.ID, 4)
		require.NoError(t, err)
		assert.True(t, ok)

		updated, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 6, updated.Stock)
	})

	t.Run("refuses to go below zero", func(t *testing.T) {
		product := createProduct(t, db, umkm.ID, "Minyak Goreng", 3)

		ok, err := repo.DecrementStock(ctx, product.ID, 5)
		require.NoError(t, err)
		assert.False(t, ok)

		updated, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Stock)
	})

	t.Run("allows decrement to exactly zero", func(t *testing.T) {
		product := createProduct(t, db, umkm.ID, "Tepung Terigu", 5)

		ok, err := repo.DecrementStock(ctx, product.ID, 5)
		require.NoError(t, err)
		assert.True(t, ok)

		updated, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Stock)
	})
}

func TestProductRepository_IncrementStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	umkm := createUmkm(t, db)
	product := createProduct(t, db, umkm.ID, "Beras", 2)

	require.NoError(t, repo.IncrementStock(ctx, product.ID, 8))

	updated, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Stock)
}

func TestProductRepository_List_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	umkm := createUmkm(t, db)
	createProduct(t, db, umkm.ID, "Kopi Robusta", 10)
	createProduct(t, db, umkm.ID, "Kopi Arabika", 10)
	createProduct(t, db, umkm.ID, "Teh Melati", 10)

	results, total, err := repo.List(ctx, umkm.ID, &domainRepo.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20},
		Search:     "kopi",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, results, 2)
}

func TestProductRepository_List_SortWhitelist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	umkm := createUmkm(t, db)
	createProduct(t, db, umkm.ID, "Bandrek", 10)
	createProduct(t, db, umkm.ID, "Cendol", 10)

	t.Run("sorts by whitelisted column", func(t *testing.T) {
		results, _, err := repo.List(ctx, umkm.ID, &domainRepo.ProductFilterParams{
			Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20},
			SortBy:     "name",
			SortOrder:  "asc",
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Bandrek", results[0].Name)
	})

	t.Run("ignores unknown sort column", func(t *testing.T) {
		results, _, err := repo.List(ctx, umkm.ID, &domainRepo.ProductFilterParams{
			Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20},
			SortBy:     "name; DROP TABLE products--",
		})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)

	product, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, product)
}
