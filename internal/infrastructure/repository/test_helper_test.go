package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(gormDB))

	return database.NewDB(gormDB)
}

func createUmkm(t *testing.T, db *database.DB) *entity.UMKM {
	t.Helper()
	ctx := context.Background()

	owner := &entity.User{
		Name:     "Owner",
		Email:    fmt.Sprintf("owner-%s@example.com", uuid.NewString()[:8]),
		Password: "hash",
		IsActive: true,
	}
	require.NoError(t, db.Conn(ctx).Create(owner).Error)

	umkm := &entity.UMKM{
		OwnerID:      owner.ID,
		BusinessName: "Toko Uji",
		BusinessType: "retail",
		Address:      "Jl. Percobaan 7",
		Phone:        "081111111111",
	}
	require.NoError(t, db.Conn(ctx).Create(umkm).Error)
	return umkm
}

func createProduct(t *testing.T, db *database.DB, umkmID uuid.UUID, name string, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{
		UmkmID: umkmID,
		Name:   name,
		Price:  1000000,
		Stock:  stock,
	}
	require.NoError(t, db.Conn(context.Background()).Create(product).Error)
	return product
}
