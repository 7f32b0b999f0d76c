package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/internal/domain/enum"
	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; cap the pool so
	// every query and transaction sees the same database.
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(gormDB))

	return database.NewDB(gormDB)
}

func seedOwnerAndUmkm(t *testing.T, db *database.DB) (*entity.User, *entity.UMKM) {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{
		Name:     "Ibu Sari",
		Email:    fmt.Sprintf("sari-%s@example.com", uuid.NewString()[:8]),
		Password: "not-a-real-hash",
		Role:     "owner",
		IsActive: true,
	}
	require.NoError(t, db.Conn(ctx).Create(user).Error)

	umkm := &entity.UMKM{
		OwnerID:      user.ID,
		BusinessName: "Warung Sari Rasa",
		BusinessType: "kuliner",
		Address:      "Jl. Melati No. 3, Bandung",
		Phone:        "081234567890",
	}
	require.NoError(t, db.Conn(ctx).Create(umkm).Error)

	return user, umkm
}

func seedProduct(t *testing.T, db *database.DB, umkmID uuid.UUID, name string, priceCents int64, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{
		UmkmID: umkmID,
		Name:   name,
		Price:  priceCents,
		Stock:  stock,
		Unit:   "pcs",
	}
	require.NoError(t, db.Conn(context.Background()).Create(product).Error)
	return product
}

func seedCustomer(t *testing.T, db *database.DB, umkmID uuid.UUID, name string) *entity.Customer {
	t.Helper()

	customer := &entity.Customer{
		UmkmID: umkmID,
		Name:   name,
		Phone:  "089876543210",
	}
	require.NoError(t, db.Conn(context.Background()).Create(customer).Error)
	return customer
}

// seedPaidSale inserts a paid sale directly, bypassing the service, for
// analytics fixtures.
func seedPaidSale(t *testing.T, db *database.DB, umkm *entity.UMKM, createdBy uuid.UUID, date time.Time, finalCents int64, items []entity.TransactionItem) *entity.Transaction {
	t.Helper()

	transaction := &entity.Transaction{
		UmkmID:            umkm.ID,
		TransactionNumber: fmt.Sprintf("TRX-%s-%s-%s", umkm.ID, date.Format("20060102"), uuid.NewString()[:8]),
		TransactionDate:   date,
		TransactionType:   enum.TransactionTypeSale,
		PaymentMethod:     enum.PaymentMethodCash,
		TotalAmount:       finalCents,
		FinalAmount:       finalCents,
		PaymentStatus:     enum.PaymentStatusPaid,
		CreatedBy:         createdBy,
		Items:             items,
	}
	require.NoError(t, db.Conn(context.Background()).Create(transaction).Error)
	return transaction
}
