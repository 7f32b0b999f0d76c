package service

import (
	"context"
	"testing"

	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/garudaai/umkm-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(db *database.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewUmkmRepository(db),
	)
}

func TestProductService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	_, umkm := seedOwnerAndUmkm(t, db)
	ctx := context.Background()

	sku := "KOPI-001"
	product, err := svc.Create(ctx, &CreateProductInput{
		UmkmID: umkm.ID,
		Name:   "Kopi Arabika",
		Price:  25000,
		Stock:  50,
		SKU:    &sku,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500000), product.Price)
	assert.Equal(t, "pcs", product.Unit)
	assert.True(t, product.IsActive)
}

func TestProductService_Create_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	_, umkm := seedOwnerAndUmkm(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateProductInput{UmkmID: umkm.ID, Price: 1000})
	require.Error(t, err)
	assert.Equal(t, "Nama product wajib diisi", err.Error())

	_, err = svc.Create(ctx, &CreateProductInput{UmkmID: umkm.ID, Name: "Gratisan", Price: 0})
	require.Error(t, err)
	assert.Equal(t, "Harga harus lebih dari 0", err.Error())
}

func TestProductService_Create_DuplicateSKU(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	_, umkm := seedOwnerAndUmkm(t, db)
	ctx := context.Background()

	sku := "TEH-001"
	_, err := svc.Create(ctx, &CreateProductInput{UmkmID: umkm.ID, Name: "Teh Hijau", Price: 10000, SKU: &sku})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &CreateProductInput{UmkmID: umkm.ID, Name: "Teh Hitam", Price: 12000, SKU: &sku})
	require.Error(t, err)
	assert.Equal(t, "SKU sudah digunakan", err.Error())
}

func TestProductService_Update_Sparse(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	_, umkm := seedOwnerAndUmkm(t, db)
	product := seedProduct(t, db, umkm.ID, "Sambal Botol", 1500000, 30)
	ctx := context.Background()

	newPrice := 18000.0
	inactive := false
	updated, err := svc.Update(ctx, product.ID, &UpdateProductInput{
		Price:    &newPrice,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1800000), updated.Price)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Sambal Botol", updated.Name)
	assert.Equal(t, 30, updated.Stock)
}

func TestProductService_GetLowStock(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	_, umkm := seedOwnerAndUmkm(t, db)
	seedProduct(t, db, umkm.ID, "Hampir Habis", 1000000, 2)
	seedProduct(t, db, umkm.ID, "Masih Banyak", 1000000, 99)
	ctx := context.Background()

	low, err := svc.GetLowStock(ctx, umkm.ID, 10)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Hampir Habis", low[0].Name)
}
