package request

import "github.com/google/uuid"

// CreateCustomerRequest is the create customer payload
type CreateCustomerRequest struct {
	UmkmID uuid.UUID `json:"umkm_id" binding:"required"`
	Name   string    `json:"name" binding:"required"`
	Phone  string    `json:"phone"`
}

// UpdateCustomerRequest is the sparse customer update payload
type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}
