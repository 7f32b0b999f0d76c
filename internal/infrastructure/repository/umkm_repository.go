package repository

import (
	"context"
	"errors"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	domainRepo "github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type umkmRepository struct {
	db *database.DB
}

// NewUmkmRepository creates a new business profile repository
func NewUmkmRepository(db *database.DB) domainRepo.UmkmRepository {
	return &umkmRepository{db: db}
}

func (r *umkmRepository) Create(ctx context.Context, umkm *entity.UMKM) error {
	return r.db.Conn(ctx).Create(umkm).Error
}

func (r *umkmRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.UMKM, error) {
	var umkm entity.UMKM
	err := r.db.Conn(ctx).First(&umkm, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &umkm, err
}

func (r *umkmRepository) Update(ctx context.Context, umkm *entity.UMKM) error {
	return r.db.Conn(ctx).Save(umkm).Error
}

func (r *umkmRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.Conn(ctx).Delete(&entity.UMKM{}, "id = ?", id).Error
}

func (r *umkmRepository) List(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams) ([]entity.UMKM, int64, error) {
	var businesses []entity.UMKM
	var total int64

	query := r.db.Conn(ctx).Model(&entity.UMKM{}).Where("owner_id = ?", ownerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&businesses).Error

	return businesses, total, err
}
