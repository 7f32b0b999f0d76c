package repository

import (
	"context"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/google/uuid"
)

// UmkmRepository defines the interface for business profile data operations
type UmkmRepository interface {
	Create(ctx context.Context, umkm *entity.UMKM) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.UMKM, error)
	Update(ctx context.Context, umkm *entity.UMKM) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams) ([]entity.UMKM, int64, error)
}
