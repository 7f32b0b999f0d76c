package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UMKM represents a micro/small/medium business, the tenant unit that owns
// products, customers and transactions.
type UMKM struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	BusinessName    string         `gorm:"size:255;not null" json:"business_name"`
	BusinessType    string         `gorm:"size:100;not null" json:"business_type"`
	Description     *string        `gorm:"type:text" json:"description,omitempty"`
	Address         string         `gorm:"type:text;not null" json:"address"`
	Phone           string         `gorm:"size:50;not null" json:"phone"`
	Email           *string        `gorm:"size:255" json:"email,omitempty"`
	EstablishedYear *int           `json:"established_year,omitempty"`
	EmployeeCount   int            `gorm:"default:0" json:"employee_count"`
	MonthlyRevenue  int64          `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

// MarshalJSON converts cents to decimal for API responses
func (u UMKM) MarshalJSON() ([]byte, error) {
	type Alias UMKM
	return json.Marshal(&struct {
		Alias
		MonthlyRevenue float64 `json:"monthly_revenue"`
	}{
		Alias:          Alias(u),
		MonthlyRevenue: float64(u.MonthlyRevenue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new business
func (u *UMKM) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the UMKM model
func (UMKM) TableName() string {
	return "umkm"
}
