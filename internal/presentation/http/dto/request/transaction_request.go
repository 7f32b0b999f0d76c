package request

import "github.com/google/uuid"

// TransactionItemRequest is a line item in a create transaction request
type TransactionItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Discount  float64   `json:"discount"`
}

// CreateTransactionRequest is the create transaction payload
type CreateTransactionRequest struct {
	UmkmID          uuid.UUID                `json:"umkm_id" binding:"required"`
	CustomerID      *uuid.UUID               `json:"customer_id"`
	CustomerName    *string                  `json:"customer_name"`
	TransactionType string                   `json:"transaction_type"`
	PaymentMethod   string                   `json:"payment_method"`
	PaymentStatus   string                   `json:"payment_status"`
	DiscountAmount  float64                  `json:"discount_amount"`
	TaxAmount       float64                  `json:"tax_amount"`
	Notes           *string                  `json:"notes"`
	Items           []TransactionItemRequest `json:"items"`
}

// UpdateTransactionRequest is the sparse transaction update payload
type UpdateTransactionRequest struct {
	CustomerID     *uuid.UUID `json:"customer_id"`
	CustomerName   *string    `json:"customer_name"`
	PaymentMethod  *string    `json:"payment_method"`
	PaymentStatus  *string    `json:"payment_status"`
	DiscountAmount *float64   `json:"discount_amount"`
	TaxAmount      *float64   `json:"tax_amount"`
	Notes          *string    `json:"notes"`
}
