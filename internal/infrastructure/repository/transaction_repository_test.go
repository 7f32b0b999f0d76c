package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/internal/domain/enum"
	domainRepo "github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository_List_SortWhitelist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	umkm := createUmkm(t, db)

	for i, amount := range []int64{3000000, 1000000} {
		transaction := &entity.Transaction{
			UmkmID:            umkm.ID,
			TransactionNumber: fmt.Sprintf("TRX-%s-20260901-%04d", umkm.ID, i+1),
			TransactionDate:   time.Now(),
			TransactionType:   enum.TransactionTypeSale,
			PaymentMethod:     enum.PaymentMethodCash,
			TotalAmount:       amount,
			FinalAmount:       amount,
			PaymentStatus:     enum.PaymentStatusPaid,
			CreatedBy:         uuid.New(),
		}
		require.NoError(t, db.Conn(ctx).Create(transaction).Error)
	}

	t.Run("sorts by whitelisted column", func(t *testing.T) {
		results, _, err := repo.List(ctx, umkm.ID, &domainRepo.TransactionFilterParams{
			Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20},
			SortBy:     "final_amount",
			SortOrder:  "asc",
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, int64(1000000), results[0].FinalAmount)
	})

	t.Run("ignores unknown sort column", func(t *testing.T) {
		results, _, err := repo.List(ctx, umkm.ID, &domainRepo.TransactionFilterParams{
			Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20},
			SortBy:     "final_amount; DROP TABLE transactions--",
		})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}

func TestSequenceRepository_Next(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()
	umkmID := uuid.New()

	t.Run("increments within a day", func(t *testing.T) {
		first, err := repo.Next(ctx, umkmID, "2026-09-01")
		require.NoError(t, err)
		assert.Equal(t, 1, first)

		second, err := repo.Next(ctx, umkmID, "2026-09-01")
		require.NoError(t, err)
		assert.Equal(t, 2, second)
	})

	t.Run("resets per day", func(t *testing.T) {
		value, err := repo.Next(ctx, umkmID, "2026-09-02")
		require.NoError(t, err)
		assert.Equal(t, 1, value)
	})

	t.Run("independent per business", func(t *testing.T) {
		value, err := repo.Next(ctx, uuid.New(), "2026-09-01")
		require.NoError(t, err)
		assert.Equal(t, 1, value)
	})
}

func TestSequenceRepository_Next_RollsBackWithTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()
	umkmID := uuid.New()

	err := db.WithinTransaction(ctx, func(txCtx context.Context) error {
		value, err := repo.Next(txCtx, umkmID, "2026-09-01")
		require.NoError(t, err)
		assert.Equal(t, 1, value)
		return assert.AnError
	})
	require.Error(t, err)

	// The reservation was rolled back, the counter starts over
	value, err := repo.Next(ctx, umkmID, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, 1, value)
}
