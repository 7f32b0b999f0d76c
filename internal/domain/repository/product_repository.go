package repository

import (
	"context"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetBySKU(ctx context.Context, umkmID uuid.UUID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, umkmID uuid.UUID, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context, umkmID uuid.UUID, threshold int) ([]entity.Product, error)
	// DecrementStock atomically decrements stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock, (false, err) on error.
	DecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	// IncrementStock atomically increments stock (for deletions/returns).
	IncrementStock(ctx context.Context, id uuid.UUID, amount int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}
