package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	domainRepo "github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productSortColumns whitelists the columns accepted from the sort_by query
// param; anything else falls back to the default order.
var productSortColumns = map[string]bool{
	"name":       true,
	"price":      true,
	"stock":      true,
	"created_at": true,
}

type productRepository struct {
	db *database.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *database.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.Conn(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.Conn(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.Conn(ctx).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetBySKU(ctx context.Context, umkmID uuid.UUID, sku string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.Conn(ctx).First(&product, "umkm_id = ? AND sku = ?", umkmID, sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.Conn(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.Conn(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, umkmID uuid.UUID, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.Conn(ctx).Model(&entity.Product{}).Where("umkm_id = ?", umkmID)

	if params.Search != "" {
		search := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", search, search)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if productSortColumns[params.SortBy] {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) GetLowStock(ctx context.Context, umkmID uuid.UUID, threshold int) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.Conn(ctx).
		Where("umkm_id = ? AND is_active = ? AND stock <= ?", umkmID, true, threshold).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

// DecrementStock atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE products SET stock = stock - amount WHERE id = ? AND stock >= amount
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	result := r.db.Conn(ctx).Model(&entity.Product{}).
		Where("id = ? AND stock >= ?", id, amount).
		Update("stock", gorm.Expr("stock - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

// IncrementStock atomically increments stock (used when transactions are removed)
func (r *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, amount int) error {
	return r.db.Conn(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", amount)).Error
}
