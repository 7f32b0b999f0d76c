package repository

import (
	"context"
	"time"

	"github.com/garudaai/umkm-api/internal/domain/enum"
	"github.com/google/uuid"
)

// SalesSummaryResult represents aggregate sales figures for a period
type SalesSummaryResult struct {
	TotalRevenue     float64
	TransactionCount int
	ItemsSold        int
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	Category     string
	QuantitySold int
	Revenue      float64
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date             time.Time
	Revenue          float64
	TransactionCount int
}

// MonthlySalesResult represents sales data for a single month
type MonthlySalesResult struct {
	Month            string
	Revenue          float64
	TransactionCount int
	ItemsSold        int
}

// PaymentMethodResult represents sales aggregated by payment method
type PaymentMethodResult struct {
	Method enum.PaymentMethod
	Count  int
	Total  float64
}

// AnalyticsRepository defines interface for analytics/aggregation queries.
// Revenue figures only count paid sale transactions.
type AnalyticsRepository interface {
	// GetSalesSummary returns aggregate revenue, transaction count and items
	// sold within [start, end).
	GetSalesSummary(ctx context.Context, umkmID uuid.UUID, start, end time.Time) (*SalesSummaryResult, error)

	// GetDailySales returns daily sales data for the last N days
	GetDailySales(ctx context.Context, umkmID uuid.UUID, days int) ([]DailySalesResult, error)

	// GetMonthlySales returns month buckets for the last N months
	GetMonthlySales(ctx context.Context, umkmID uuid.UUID, months int) ([]MonthlySalesResult, error)

	// GetTopProducts returns top selling products by revenue within [start, end)
	GetTopProducts(ctx context.Context, umkmID uuid.UUID, start, end time.Time, limit int) ([]TopProductResult, error)

	// GetPaymentMethodBreakdown returns sales aggregated by payment method
	GetPaymentMethodBreakdown(ctx context.Context, umkmID uuid.UUID, start, end time.Time) ([]PaymentMethodResult, error)

	// CountPendingTransactions returns the number of transactions awaiting payment
	CountPendingTransactions(ctx context.Context, umkmID uuid.UUID) (int64, error)

	// CountActiveProducts returns the number of active products in the catalog
	CountActiveProducts(ctx context.Context, umkmID uuid.UUID) (int64, error)

	// CountCustomers returns the number of registered customers
	CountCustomers(ctx context.Context, umkmID uuid.UUID) (int64, error)

	// CountActiveSalesDays returns the number of distinct days with at least
	// one paid sale within [start, end)
	CountActiveSalesDays(ctx context.Context, umkmID uuid.UUID, start, end time.Time) (int64, error)

	// CountDistinctProductsSold returns the number of distinct products sold
	// within [start, end)
	CountDistinctProductsSold(ctx context.Context, umkmID uuid.UUID, start, end time.Time) (int64, error)

	// CountDistinctCustomers returns the number of distinct customers attached
	// to paid sales within [start, end)
	CountDistinctCustomers(ctx context.Context, umkmID uuid.UUID, start, end time.Time) (int64, error)
}
