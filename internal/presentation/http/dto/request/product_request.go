package request

import "github.com/google/uuid"

// CreateProductRequest is the create product payload
type CreateProductRequest struct {
	UmkmID      uuid.UUID `json:"umkm_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Price       float64   `json:"price" binding:"required"`
	Stock       int       `json:"stock"`
	Unit        string    `json:"unit"`
	SKU         *string   `json:"sku"`
}

// UpdateProductRequest is the sparse product update payload
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Unit        *string  `json:"unit"`
	SKU         *string  `json:"sku"`
	IsActive    *bool    `json:"is_active"`
}
