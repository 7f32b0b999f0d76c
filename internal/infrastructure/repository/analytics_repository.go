package repository

import (
	"context"
	"time"

	domainRepo "github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/google/uuid"
)

type analyticsRepository struct {
	db *database.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *database.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetSalesSummary(ctx context.Context, umkmID uuid.UUID, start, end time.Time) (*domainRepo.SalesSummaryResult, error) {
	var result domainRepo.SalesSummaryResult

	err := r.db.Conn(ctx).Raw(`
		SELECT
			COALESCE(SUM(final_amount), 0) / 100.0 as total_revenue,
			COUNT(id) as transaction_count
		FROM transactions
		WHERE umkm_id = ?
		AND transaction_type = 'sale' AND payment_status = 'paid'
		AND transaction_date >= ? AND transaction_date < ?
	`, umkmID, start, end).Scan(&result).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Conn(ctx).Raw(`
		SELECT COALESCE(SUM(ti.quantity), 0)
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		WHERE t.umkm_id = ?
		AND t.transaction_type = 'sale' AND t.payment_status = 'paid'
		AND t.transaction_date >= ? AND t.transaction_date < ?
	`, umkmID, start, end).Scan(&result.ItemsSold).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, umkmID uuid.UUID, days int) ([]domainRepo.DailySalesResult, error) {
	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	// Generate dates for the last N days and get sales for each
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		summary, err := r.GetSalesSummary(ctx, umkmID, startOfDay, endOfDay)
		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:             startOfDay,
			Revenue:          summary.TotalRevenue,
			TransactionCount: summary.TransactionCount,
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetMonthlySales(ctx context.Context, umkmID uuid.UUID, months int) ([]domainRepo.MonthlySalesResult, error) {
	results := make([]domainRepo.MonthlySalesResult, 0, months)
	now := time.Now()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := months - 1; i >= 0; i-- {
		startOfMonth := currentMonth.AddDate(0, -i, 0)
		endOfMonth := startOfMonth.AddDate(0, 1, 0)

		summary, err := r.GetSalesSummary(ctx, umkmID, startOfMonth, endOfMonth)
		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.MonthlySalesResult{
			Month:            startOfMonth.Format("2006-01"),
			Revenue:          summary.TotalRevenue,
			TransactionCount: summary.TransactionCount,
			ItemsSold:        summary.ItemsSold,
		})
	}

	return results, nil
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, umkmID uuid.UUID, start, end time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := r.db.Conn(ctx).Raw(`
		SELECT
			ti.product_id as product_id,
			ti.product_name as product_name,
			COALESCE(p.category, 'Umum') as category,
			COALESCE(SUM(ti.quantity), 0) as quantity_sold,
			COALESCE(SUM(ti.subtotal), 0) / 100.0 as revenue
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		LEFT JOIN products p ON p.id = ti.product_id
		WHERE t.umkm_id = ?
		AND t.transaction_type = 'sale' AND t.payment_status = 'paid'
		AND t.transaction_date >= ? AND t.transaction_date < ?
		GROUP BY ti.product_id, ti.product_name, p.category
		ORDER BY quantity_sold DESC
		LIMIT ?
	`, umkmID, start, end, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetPaymentMethodBreakdown(ctx context.Context, umkmID uuid.UUID, start, end time.Time) ([]domainRepo.PaymentMethodResult, error) {
	var results []domainRepo.PaymentMethodResult

	err := r.db.Conn(ctx).Raw(`
		SELECT
			payment_method as method,
			COUNT(id) as count,
			COALESCE(SUM(final_amount), 0) / 100.0 as total
		FROM transactions
		WHERE umkm_id = ?
		AND transaction_type = 'sale' AND payment_status = 'paid'
		AND transaction_date >= ? AND transaction_date < ?
		GROUP BY payment_method
		ORDER BY total DESC
	`, umkmID, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) CountPendingTransactions(ctx context.Context, umkmID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Conn(ctx).Raw(`
		SELECT COUNT(id)
		FROM transactions
		WHERE umkm_id = ? AND payment_status IN ('pending', 'partial')
	`, umkmID).Scan(&count).Error
	return count, err
}

func (r *analyticsRepository) CountActiveProducts(ctx context.Context, umkmID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Conn(ctx).Raw(`
		SELECT COUNT(id)
		FROM products
		WHERE umkm_id = ? AND is_active = ? AND deleted_at IS NULL
	`, umkmID, true).Scan(&count).Error
	return count, err
}

func (r *analyticsRepository) CountCustomers(ctx context.Context, umkmID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Conn(ctx).Raw(`
		SELECT COUNT(id)
		FROM customers
		WHERE umkm_id = ? AND deleted_at IS NULL
	`, umkmID).Scan(&count).Error
	return count, err
}

func (r *analyticsRepository) CountActiveSalesDays(ctx context.Context, umkmID uuid.UUID, start, end time.Time) (int64, error) {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return 0, nil
	}

	// Count per-day instead of grouping on a date() expression so the same
	// query works on every driver.
	var active int64
	for i := 0; i < days; i++ {
		dayStart := start.AddDate(0, 0, i)
		dayEnd := dayStart.Add(24 * time.Hour)

		var count int64
		err := r.db.Conn(ctx).Raw(`
			SELECT COUNT(id)
			FROM transactions
			WHERE umkm_id = ?
			AND transaction_type = 'sale' AND payment_status = 'paid'
			AND transaction_date >= ? AND transaction_date < ?
		`, umkmID, dayStart, dayEnd).Scan(&count).Error
		if err != nil {
			return 0, err
		}
		if count > 0 {
			active++
		}
	}

	return active, nil
}

func (r *analyticsRepository) CountDistinctProductsSold(ctx context.Context, umkmID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Conn(ctx).Raw(`
		SELECT COUNT(DISTINCT ti.product_id)
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		WHERE t.umkm_id = ?
		AND t.transaction_type = 'sale' AND t.payment_status = 'paid'
		AND t.transaction_date >= ? AND t.transaction_date < ?
	`, umkmID, start, end).Scan(&count).Error
	return count, err
}

func (r *analyticsRepository) CountDistinctCustomers(ctx context.Context, umkmID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Conn(ctx).Raw(`
		SELECT COUNT(DISTINCT customer_id)
		FROM transactions
		WHERE umkm_id = ? AND customer_id IS NOT NULL
		AND transaction_type = 'sale' AND payment_status = 'paid'
		AND transaction_date >= ? AND transaction_date < ?
	`, umkmID, start, end).Scan(&count).Error
	return count, err
}
