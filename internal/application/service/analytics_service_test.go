package service

import (
	"context"
	"testing"
	"time"

	"github.com/garudaai/umkm-api/internal/domain/entity"
	"github.com/garudaai/umkm-api/internal/domain/enum"
	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/garudaai/umkm-api/internal/infrastructure/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsService(db *database.DB) *AnalyticsService {
	return NewAnalyticsService(
		repository.NewAnalyticsRepository(db),
		repository.NewUmkmRepository(db),
	)
}

func TestAnalyticsService_GetDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	user, umkm := seedOwnerAndUmkm(t, db)
	product := seedProduct(t, db, umkm.ID, "Kopi Tubruk", 1000000, 100)
	seedCustomer(t, db, umkm.ID, "Bu Rina")
	ctx := context.Background()
	now := time.Now()

	// Two paid sales inside the window
	seedPaidSale(t, db, umkm, user.ID, now.AddDate(0, 0, -1), 5000000, []entity.TransactionItem{
		{ProductID: product.ID, ProductName: product.Name, Quantity: 5, UnitPrice: 1000000, Subtotal: 5000000},
	})
	seedPaidSale(t, db, umkm, user.ID, now.AddDate(0, 0, -2), 3000000, []entity.TransactionItem{
		{ProductID: product.ID, ProductName: product.Name, Quantity: 3, UnitPrice: 1000000, Subtotal: 3000000},
	})

	// A pending sale is counted separately, not in revenue
	pending := &entity.Transaction{
		UmkmID:            umkm.ID,
		TransactionNumber: "TRX-pending-1",
		TransactionDate:   now.AddDate(0, 0, -1),
		TransactionType:   enum.TransactionTypeSale,
		PaymentMethod:     enum.PaymentMethodCash,
		FinalAmount:       9900000,
		PaymentStatus:     enum.PaymentStatusPending,
		CreatedBy:         user.ID,
	}
	require.NoError(t, db.Conn(ctx).Create(pending).Error)

	result, err := svc.GetDashboard(ctx, umkm.ID, 30)
	require.NoError(t, err)

	assert.InDelta(t, 80000.0, result.TotalRevenue, 0.01)
	assert.Equal(t, 2, result.TotalTransactions)
	assert.Equal(t, int64(1), result.TotalCustomers)
	assert.Equal(t, int64(1), result.TotalProducts)
	assert.Equal(t, int64(1), result.PendingTransactions)
	require.Len(t, result.TopProducts, 1)
	assert.Equal(t, "Kopi Tubruk", result.TopProducts[0].ProductName)
	assert.Equal(t, 8, result.TopProducts[0].TotalSold)
	assert.Len(t, result.DailySales, 7)
}

func TestAnalyticsService_GetDashboard_UnknownBusiness(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)

	_, err := svc.GetDashboard(context.Background(), uuid.New(), 30)
	require.Error(t, err)
	assert.Equal(t, "UMKM tidak ditemukan", err.Error())
}

func TestAnalyticsService_GetSalesReport(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	user, umkm := seedOwnerAndUmkm(t, db)
	product := seedProduct(t, db, umkm.ID, "Donat", 500000, 100)
	ctx := context.Background()
	now := time.Now()

	seedPaidSale(t, db, umkm, user.ID, now.AddDate(0, 0, -3), 2000000, []entity.TransactionItem{
		{ProductID: product.ID, ProductName: product.Name, Quantity: 4, UnitPrice: 500000, Subtotal: 2000000},
	})
	seedPaidSale(t, db, umkm, user.ID, now.AddDate(0, 0, -4), 1000000, []entity.TransactionItem{
		{ProductID: product.ID, ProductName: product.Name, Quantity: 2, UnitPrice: 500000, Subtotal: 1000000},
	})

	report, err := svc.GetSalesReport(ctx, umkm.ID, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalTransactions)
	assert.InDelta(t, 30000.0, report.TotalRevenue, 0.01)
	assert.InDelta(t, 9000.0, report.TotalProfit, 0.01)
	assert.InDelta(t, 15000.0, report.AverageTransaction, 0.01)
	assert.Equal(t, 6, report.TotalItemsSold)
}

func TestAnalyticsService_GetSalesReport_InvalidRange(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	_, umkm := seedOwnerAndUmkm(t, db)

	now := time.Now()
	_, err := svc.GetSalesReport(context.Background(), umkm.ID, now, now.AddDate(0, 0, -1))
	require.Error(t, err)
	assert.Equal(t, "Tanggal mulai harus sebelum tanggal akhir", err.Error())
}

func TestAnalyticsService_GetTopProducts_OrderedByQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	user, umkm := seedOwnerAndUmkm(t, db)
	cheap := seedProduct(t, db, umkm.ID, "Keripik", 200000, 100)
	pricey := seedProduct(t, db, umkm.ID, "Kue Tart", 5000000, 100)
	ctx := context.Background()
	now := time.Now()

	// Keripik sells more units, Kue Tart brings more revenue
	seedPaidSale(t, db, umkm, user.ID, now.AddDate(0, 0, -1), 2000000, []entity.TransactionItem{
		{ProductID: cheap.ID, ProductName: cheap.Name, Quantity: 10, UnitPrice: 200000, Subtotal: 2000000},
	})
	seedPaidSale(t, db, umkm, user.ID, now.AddDate(0, 0, -2), 10000000, []entity.TransactionItem{
		{ProductID: pricey.ID, ProductName: pricey.Name, Quantity: 2, UnitPrice: 5000000, Subtotal: 10000000},
	})

	top, err := svc.GetTopProducts(ctx, umkm.ID, 10, 30)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Keripik", top[0].ProductName)
	assert.Equal(t, 10, top[0].TotalSold)
	assert.Equal(t, "Umum", top[0].Category)
	assert.Equal(t, "Kue Tart", top[1].ProductName)
}

func TestAnalyticsService_GetPaymentMethodStats(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	user, umkm := seedOwnerAndUmkm(t, db)
	ctx := context.Background()
	now := time.Now()

	seedPaidSale(t, db, umkm, user.ID, now.AddDate(0, 0, -1), 7500000, nil)
	transfer := &entity.Transaction{
		UmkmID:            umkm.ID,
		TransactionNumber: "TRX-transfer-1",
		TransactionDate:   now.AddDate(0, 0, -1),
		TransactionType:   enum.TransactionTypeSale,
		PaymentMethod:     enum.PaymentMethodTransfer,
		FinalAmount:       2500000,
		PaymentStatus:     enum.PaymentStatusPaid,
		CreatedBy:         user.ID,
	}
	require.NoError(t, db.Conn(ctx).Create(transfer).Error)

	stats, err := svc.GetPaymentMethodStats(ctx, umkm.ID, 30)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "cash", stats[0].PaymentMethod)
	assert.InDelta(t, 75.0, stats[0].Percentage, 0.01)
	assert.Equal(t, "transfer", stats[1].PaymentMethod)
	assert.InDelta(t, 25.0, stats[1].Percentage, 0.01)
}

func TestAnalyticsService_GetHealthScore_SparseActivity(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	user, umkm := seedOwnerAndUmkm(t, db)
	product := seedProduct(t, db, umkm.ID, "Pisang Goreng", 300000, 100)
	ctx := context.Background()

	// One sales day, one product, no customers, no previous period
	seedPaidSale(t, db, umkm, user.ID, time.Now().AddDate(0, 0, -1), 1500000, []entity.TransactionItem{
		{ProductID: product.ID, ProductName: product.Name, Quantity: 5, UnitPrice: 300000, Subtotal: 1500000},
	})

	score, err := svc.GetHealthScore(ctx, umkm.ID)
	require.NoError(t, err)

	assert.Equal(t, 15, score.Breakdown["revenue_growth"])
	assert.Equal(t, 5, score.Breakdown["consistency"])
	assert.Equal(t, 5, score.Breakdown["diversification"])
	assert.Equal(t, 5, score.Breakdown["customer_base"])
	assert.Equal(t, 30, score.TotalScore)
	assert.Equal(t, "Needs Attention", score.Status)
	assert.Equal(t, 100, score.MaxScore)
}

func TestAnalyticsService_GetHealthScore_NoActivity(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	_, umkm := seedOwnerAndUmkm(t, db)

	score, err := svc.GetHealthScore(context.Background(), umkm.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, score.Breakdown["revenue_growth"])
	assert.Equal(t, 0, score.Breakdown["consistency"])
	assert.Equal(t, 5, score.Breakdown["diversification"])
	assert.Equal(t, 5, score.Breakdown["customer_base"])
	assert.Equal(t, 10, score.TotalScore)
	assert.Equal(t, "Needs Attention", score.Status)
}

func TestAnalyticsService_GetMonthlyReport(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	user, umkm := seedOwnerAndUmkm(t, db)
	ctx := context.Background()
	now := time.Now()

	seedPaidSale(t, db, umkm, user.ID, now, 10000000, nil)

	report, err := svc.GetMonthlyReport(ctx, umkm.ID, 3)
	require.NoError(t, err)
	require.Len(t, report, 3)

	last := report[len(report)-1]
	assert.Equal(t, now.Format("2006-01"), last.Month)
	assert.InDelta(t, 100000.0, last.Revenue, 0.01)
	assert.InDelta(t, 30000.0, last.Profit, 0.01)
}
