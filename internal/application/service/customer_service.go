package service

import (
	"context"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/pkg/apperror"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerService handles customer directory operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	umkmRepo     repository.UmkmRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, umkmRepo repository.UmkmRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		umkmRepo:     umkmRepo,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	UmkmID uuid.UUID
	Name   string
	Phone  string
}

// UpdateCustomerInput represents the sparse customer update input
type UpdateCustomerInput struct {
	Name  *string
	Phone *string
}

// Create registers a new customer
func (s *CustomerService) Create(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Nama customer wajib diisi")
	}

	umkm, err := s.umkmRepo.GetByID(ctx, input.UmkmID)
	if err != nil {
		return nil, err
	}
	if umkm == nil {
		return nil, apperror.NewNotFoundError("UMKM")
	}

	customer := &entity.Customer{
		UmkmID: input.UmkmID,
		Name:   input.Name,
		Phone:  input.Phone,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID retrieves a customer
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// List retrieves customers with search and pagination
func (s *CustomerService) List(ctx context.Context, umkmID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	return s.customerRepo.List(ctx, umkmID, params, search)
}

// Update applies a sparse customer update
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperror.NewBadRequestError("Nama customer wajib diisi")
		}
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}
