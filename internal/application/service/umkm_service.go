package service

import (
	"context"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/pkg/apperror"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/google/uuid"
)

// UmkmService handles business profile operations
type UmkmService struct {
	umkmRepo repository.UmkmRepository
}

// NewUmkmService creates a new business profile service
func NewUmkmService(umkmRepo repository.UmkmRepository) *UmkmService {
	return &UmkmService{umkmRepo: umkmRepo}
}

// CreateUmkmInput represents the create business input
type CreateUmkmInput struct {
	OwnerID         uuid.UUID
	BusinessName    string
	BusinessType    string
	Description     *string
	Address         string
	Phone           string
	Email           *string
	EstablishedYear *int
	EmployeeCount   int
	MonthlyRevenue  float64
}

// UpdateUmkmInput represents the sparse business update input
type UpdateUmkmInput struct {
	BusinessName    *string
	BusinessType    *string
	Description     *string
	Address         *string
	Phone           *string
	Email           *string
	EstablishedYear *int
	EmployeeCount   *int
	MonthlyRevenue  *float64
}

// Create registers a new business profile
func (s *UmkmService) Create(ctx context.Context, input *CreateUmkmInput) (*entity.UMKM, error) {
	if input.BusinessName == "" {
		return nil, apperror.NewBadRequestError("Nama usaha wajib diisi")
	}
	if input.BusinessType == "" {
		return nil, apperror.NewBadRequestError("Jenis usaha wajib diisi")
	}

	umkm := &entity.UMKM{
		OwnerID:         input.OwnerID,
		BusinessName:    input.BusinessName,
		BusinessType:    input.BusinessType,
		Description:     input.Description,
		Address:         input.Address,
		Phone:           input.Phone,
		Email:           input.Email,
		EstablishedYear: input.EstablishedYear,
		EmployeeCount:   input.EmployeeCount,
		MonthlyRevenue:  toCents(input.MonthlyRevenue),
	}
	if err := s.umkmRepo.Create(ctx, umkm); err != nil {
		return nil, err
	}
	return umkm, nil
}

// GetByID retrieves a business profile
func (s *UmkmService) GetByID(ctx context.Context, id uuid.UUID) (*entity.UMKM, error) {
	umkm, err := s.umkmRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if umkm == nil {
		return nil, apperror.NewNotFoundError("UMKM")
	}
	return umkm, nil
}

// ListByOwner retrieves the businesses owned by a user
func (s *UmkmService) ListByOwner(ctx context.Context, ownerID uuid.UUID, params *pagination.PaginationParams) ([]entity.UMKM, int64, error) {
	return s.umkmRepo.List(ctx, ownerID, params)
}

// Update applies a sparse business profile update
func (s *UmkmService) Update(ctx context.Context, id uuid.UUID, input *UpdateUmkmInput) (*entity.UMKM, error) {
	umkm, err := s.umkmRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if umkm == nil {
		return nil, apperror.NewNotFoundError("UMKM")
	}

	if input.BusinessName != nil {
		if *input.BusinessName == "" {
			return nil, apperror.NewBadRequestError("Nama usaha wajib diisi")
		}
		umkm.BusinessName = *input.BusinessName
	}
	if input.BusinessType != nil {
		umkm.BusinessType = *input.BusinessType
	}
	if input.Description != nil {
		umkm.Description = input.Description
	}
	if input.Address != nil {
		umkm.Address = *input.Address
	}
	if input.Phone != nil {
		umkm.Phone = *input.Phone
	}
	if input.Email != nil {
		umkm.Email = input.Email
	}
	if input.EstablishedYear != nil {
		umkm.EstablishedYear = input.EstablishedYear
	}
	if input.EmployeeCount != nil {
		umkm.EmployeeCount = *input.EmployeeCount
	}
	if input.MonthlyRevenue != nil {
		umkm.MonthlyRevenue = toCents(*input.MonthlyRevenue)
	}

	if err := s.umkmRepo.Update(ctx, umkm); err != nil {
		return nil, err
	}
	return umkm, nil
}
