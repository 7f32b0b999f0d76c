package service

import (
	"context"
	"testing"

	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/garudaai/umkm-api/internal/infrastructure/repository"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerService(db *database.DB) *CustomerService {
	return NewCustomerService(repository.NewCustomerRepository(db), repository.NewUmkmRepository(db))
}

func TestCustomerService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	_, umkm := seedOwnerAndUmkm(t, db)

	customer, err := svc.Create(context.Background(), &CreateCustomerInput{
		UmkmID: umkm.ID,
		Name:   "Bu Tini",
		Phone:  "081298765432",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, customer.ID)
	assert.Equal(t, "Bu Tini", customer.Name)
}

func TestCustomerService_Create_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	_, umkm := seedOwnerAndUmkm(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateCustomerInput{UmkmID: umkm.ID})
	require.Error(t, err)
	assert.Equal(t, "Nama customer wajib diisi", err.Error())

	_, err = svc.Create(ctx, &CreateCustomerInput{UmkmID: uuid.New(), Name: "Tanpa Usaha"})
	require.Error(t, err)
	assert.Equal(t, "UMKM tidak ditemukan", err.Error())
}

func TestCustomerService_Update_Sparse(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	_, umkm := seedOwnerAndUmkm(t, db)
	customer := seedCustomer(t, db, umkm.ID, "Pak Joko")
	ctx := context.Background()

	phone := "085512341234"
	updated, err := svc.Update(ctx, customer.ID, &UpdateCustomerInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Pak Joko", updated.Name)
	assert.Equal(t, phone, updated.Phone)

	empty := ""
	_, err = svc.Update(ctx, customer.ID, &UpdateCustomerInput{Name: &empty})
	require.Error(t, err)
	assert.Equal(t, "Nama customer wajib diisi", err.Error())
}

func TestCustomerService_Delete(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	_, umkm := seedOwnerAndUmkm(t, db)
	customer := seedCustomer(t, db, umkm.ID, "Bu Lastri")
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, customer.ID))

	_, err := svc.GetByID(ctx, customer.ID)
	require.Error(t, err)
	assert.Equal(t, "Customer tidak ditemukan", err.Error())

	err = svc.Delete(ctx, customer.ID)
	require.Error(t, err)
	assert.Equal(t, "Customer tidak ditemukan", err.Error())
}

func TestCustomerService_List_Search(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	_, umkm := seedOwnerAndUmkm(t, db)
	seedCustomer(t, db, umkm.ID, "Andi Wijaya")
	seedCustomer(t, db, umkm.ID, "Andini Putri")
	seedCustomer(t, db, umkm.ID, "Budi Santoso")

	results, total, err := svc.List(context.Background(), umkm.ID,
		&pagination.PaginationParams{Page: 1, PerPage: 20}, "andi")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, results, 2)
}
