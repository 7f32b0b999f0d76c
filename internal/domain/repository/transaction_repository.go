package repository

import (
	"context"
	"time"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/internal/domain/enum"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	// Create persists a transaction header together with its items.
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetByNumber(ctx context.Context, umkmID uuid.UUID, number string) (*entity.Transaction, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	// Delete removes a transaction and its items.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, umkmID uuid.UUID, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination      *pagination.PaginationParams
	TransactionType enum.TransactionType
	PaymentStatus   enum.PaymentStatus
	CustomerID      *uuid.UUID
	StartDate       *time.Time
	EndDate         *time.Time
	SortBy          string
	SortOrder       string
}

// SequenceRepository reserves sequential numbers for transactions. Next must
// be called inside the same database transaction that inserts the header so
// the reserved value is rolled back together with a failed insert.
type SequenceRepository interface {
	// Next atomically increments and returns the counter for the given
	// business and date (formatted YYYY-MM-DD).
	Next(ctx context.Context, umkmID uuid.UUID, seqDate string) (int, error)
}
