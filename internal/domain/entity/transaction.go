package entity

import (
	"encoding/json"
	"time"

	"github.com/garudaai/umkm-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction represents a sale/purchase/return header. It exclusively owns
// its items: they are created with the header and removed with it.
type Transaction struct {
	ID                uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UmkmID            uuid.UUID            `gorm:"type:uuid;not null;index" json:"umkm_id"`
	TransactionNumber string               `gorm:"size:100;unique;not null;index" json:"transaction_number"`
	TransactionDate   time.Time            `gorm:"not null;index" json:"transaction_date"`
	CustomerID        *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName      *string              `gorm:"size:255" json:"customer_name,omitempty"`
	TransactionType   enum.TransactionType `gorm:"size:20;default:'sale'" json:"transaction_type"`
	PaymentMethod     enum.PaymentMethod   `gorm:"size:20;default:'cash'" json:"payment_method"`
	TotalAmount       int64                `gorm:"default:0" json:"-"` // Stored in cents
	DiscountAmount    int64                `gorm:"default:0" json:"-"` // Stored in cents
	TaxAmount         int64                `gorm:"default:0" json:"-"` // Stored in cents
	FinalAmount       int64                `gorm:"default:0" json:"-"` // Stored in cents
	PaymentStatus     enum.PaymentStatus   `gorm:"size:20;default:'pending';index" json:"payment_status"`
	Notes             *string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy         uuid.UUID            `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`

	// Relationships
	Umkm     UMKM              `gorm:"foreignKey:UmkmID" json:"-"`
	Customer *Customer         `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// MarshalJSON converts cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		TotalAmount    float64 `json:"total_amount"`
		DiscountAmount float64 `json:"discount_amount"`
		TaxAmount      float64 `json:"tax_amount"`
		FinalAmount    float64 `json:"final_amount"`
	}{
		Alias:          Alias(t),
		TotalAmount:    float64(t.TotalAmount) / 100,
		DiscountAmount: float64(t.DiscountAmount) / 100,
		TaxAmount:      float64(t.TaxAmount) / 100,
		FinalAmount:    float64(t.FinalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem represents a line item. unit_price and product_name are
// snapshots taken at creation time; items are immutable afterwards.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string    `gorm:"size:255;not null" json:"product_name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	UnitPrice     int64     `gorm:"not null" json:"-"` // Stored in cents
	Discount      int64     `gorm:"default:0" json:"-"` // Stored in cents
	Subtotal      int64     `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Product     Product     `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON converts cents to decimal for API responses
func (ti TransactionItem) MarshalJSON() ([]byte, error) {
	type Alias TransactionItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Discount  float64 `json:"discount"`
		Subtotal  float64 `json:"subtotal"`
	}{
		Alias:     Alias(ti),
		UnitPrice: float64(ti.UnitPrice) / 100,
		Discount:  float64(ti.Discount) / 100,
		Subtotal:  float64(ti.Subtotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction item
func (ti *TransactionItem) BeforeCreate(tx *gorm.DB) error {
	if ti.ID == uuid.Nil {
		ti.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// TransactionSequence is the per-business per-day counter behind
// transaction numbers. Reserving a number is an atomic increment of
// last_value inside the same database transaction that inserts the header,
// so two concurrent submissions can never mint the same number.
type TransactionSequence struct {
	ID        uint      `gorm:"primary_key" json:"id"`
	UmkmID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sequence_umkm_date" json:"umkm_id"`
	SeqDate   string    `gorm:"size:10;not null;uniqueIndex:idx_sequence_umkm_date" json:"seq_date"`
	LastValue int       `gorm:"not null;default:0" json:"last_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the TransactionSequence model
func (TransactionSequence) TableName() string {
	return "transaction_sequences"
}
