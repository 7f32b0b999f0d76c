package service

import (
	"context"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/pkg/apperror"
	"github.com/google/uuid"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
	umkmRepo    repository.UmkmRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, umkmRepo repository.UmkmRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		umkmRepo:    umkmRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UmkmID      uuid.UUID
	Name        string
	Description *string
	Category    *string
	Price       float64
	Stock       int
	Unit        string
	SKU         *string
}

// UpdateProductInput represents the sparse product update input
type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Stock       *int
	Unit        *string
	SKU         *string
	IsActive    *bool
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Nama product wajib diisi")
	}
	if input.Price <= 0 {
		return nil, apperror.NewBadRequestError("Harga harus lebih dari 0")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stok tidak boleh negatif")
	}

	umkm, err := s.umkmRepo.GetByID(ctx, input.UmkmID)
	if err != nil {
		return nil, err
	}
	if umkm == nil {
		return nil, apperror.NewNotFoundError("UMKM")
	}

	if input.SKU != nil && *input.SKU != "" {
		existing, err := s.productRepo.GetBySKU(ctx, input.UmkmID, *input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("SKU sudah digunakan")
		}
	}

	unit := input.Unit
	if unit == "" {
		unit = "pcs"
	}

	product := &entity.Product{
		UmkmID:      input.UmkmID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       toCents(input.Price),
		Stock:       input.Stock,
		Unit:        unit,
		SKU:         input.SKU,
		IsActive:    true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// List retrieves products with filters and pagination
func (s *ProductService) List(ctx context.Context, umkmID uuid.UUID, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, umkmID, params)
}

// GetLowStock retrieves active products at or below the stock threshold
func (s *ProductService) GetLowStock(ctx context.Context, umkmID uuid.UUID, threshold int) ([]entity.Product, error) {
	if threshold <= 0 {
		threshold = 10
	}
	return s.productRepo.GetLowStock(ctx, umkmID, threshold)
}

// Update applies a sparse product update
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Nama product wajib diisi")
		}
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, apperror.NewBadRequestError("Harga harus lebih dari 0")
		}
		product.Price = toCents(*input.Price)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperror.NewBadRequestError("Stok tidak boleh negatif")
		}
		product.Stock = *input.Stock
	}
	if input.Unit != nil && *input.Unit != "" {
		product.Unit = *input.Unit
	}
	if input.SKU != nil {
		if *input.SKU != "" {
			existing, err := s.productRepo.GetBySKU(ctx, product.UmkmID, *input.SKU)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, apperror.NewConflictError("SKU sudah digunakan")
			}
		}
		product.SKU = input.SKU
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}
