package service

import (
	"context"
	"math"
	"time"

	"github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/pkg/apperror"
	"github.com/google/uuid"
)

// profitMargin is the assumed profit share of revenue used in reports.
const profitMargin = 0.3

// AnalyticsService derives reports and dashboards from transaction data
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	umkmRepo      repository.UmkmRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, umkmRepo repository.UmkmRepository) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		umkmRepo:      umkmRepo,
	}
}

// TopProductStat is a product's sales entry in reports
type TopProductStat struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	TotalSold    int       `json:"total_sold"`
	TotalRevenue float64   `json:"total_revenue"`
}

// PaymentMethodStat is a payment method's share of sales
type PaymentMethodStat struct {
	PaymentMethod string  `json:"payment_method"`
	Count         int     `json:"count"`
	TotalAmount   float64 `json:"total_amount"`
	Percentage    float64 `json:"percentage"`
}

// DailySalesStat is a single day's sales entry
type DailySalesStat struct {
	Date             string  `json:"date"`
	TransactionCount int     `json:"transaction_count"`
	Revenue          float64 `json:"revenue"`
}

// DashboardResult is the dashboard summary payload
type DashboardResult struct {
	TotalRevenue        float64             `json:"total_revenue"`
	TotalTransactions   int                 `json:"total_transactions"`
	TotalCustomers      int64               `json:"total_customers"`
	TotalProducts       int64               `json:"total_products"`
	RevenueGrowth       float64             `json:"revenue_growth"`
	PendingTransactions int64               `json:"pending_transactions"`
	TopProducts         []TopProductStat    `json:"top_products"`
	PaymentMethods      []PaymentMethodStat `json:"payment_methods"`
	DailySales          []DailySalesStat    `json:"daily_sales"`
}

// SalesReportResult is the sales report payload
type SalesReportResult struct {
	UmkmID             uuid.UUID `json:"umkm_id"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	TotalTransactions  int       `json:"total_transactions"`
	TotalRevenue       float64   `json:"total_revenue"`
	TotalProfit        float64   `json:"total_profit"`
	AverageTransaction float64   `json:"average_transaction"`
	TotalItemsSold     int       `json:"total_items_sold"`
}

// MonthlyReportResult is one month's entry in the monthly report
type MonthlyReportResult struct {
	Month            string  `json:"month"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
	Profit           float64 `json:"profit"`
}

// HealthScoreResult is the business health score payload
type HealthScoreResult struct {
	TotalScore int            `json:"total_score"`
	Status     string         `json:"status"`
	Message    string         `json:"message"`
	Breakdown  map[string]int `json:"breakdown"`
	MaxScore   int            `json:"max_score"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *AnalyticsService) ensureUmkm(ctx context.Context, umkmID uuid.UUID) error {
	umkm, err := s.umkmRepo.GetByID(ctx, umkmID)
	if err != nil {
		return err
	}
	if umkm == nil {
		return apperror.NewNotFoundError("UMKM")
	}
	return nil
}

// GetDashboard assembles the dashboard summary for the last N days
func (s *AnalyticsService) GetDashboard(ctx context.Context, umkmID uuid.UUID, days int) (*DashboardResult, error) {
	if err := s.ensureUmkm(ctx, umkmID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	prevStart := start.AddDate(0, 0, -days)

	current, err := s.analyticsRepo.GetSalesSummary(ctx, umkmID, start, end)
	if err != nil {
		return nil, err
	}
	previous, err := s.analyticsRepo.GetSalesSummary(ctx, umkmID, prevStart, start)
	if err != nil {
		return nil, err
	}

	growth := 0.0
	if previous.TotalRevenue > 0 {
		growth = (current.TotalRevenue - previous.TotalRevenue) / previous.TotalRevenue * 100
	}

	customers, err := s.analyticsRepo.CountCustomers(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	products, err := s.analyticsRepo.CountActiveProducts(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	pending, err := s.analyticsRepo.CountPendingTransactions(ctx, umkmID)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.getTopProducts(ctx, umkmID, start, end, 5)
	if err != nil {
		return nil, err
	}
	paymentMethods, err := s.getPaymentMethods(ctx, umkmID, start, end)
	if err != nil {
		return nil, err
	}
	dailySales, err := s.getDailySales(ctx, umkmID, 7)
	if err != nil {
		return nil, err
	}

	return &DashboardResult{
		TotalRevenue:        current.TotalRevenue,
		TotalTransactions:   current.TransactionCount,
		TotalCustomers:      customers,
		TotalProducts:       products,
		RevenueGrowth:       round2(growth),
		PendingTransactions: pending,
		TopProducts:         topProducts,
		PaymentMethods:      paymentMethods,
		DailySales:          dailySales,
	}, nil
}

// GetSalesReport summarizes revenue, profit and items sold for a period.
// Profit is an estimate from the assumed margin.
func (s *AnalyticsService) GetSalesReport(ctx context.Context, umkmID uuid.UUID, start, end time.Time) (*SalesReportResult, error) {
	if err := s.ensureUmkm(ctx, umkmID); err != nil {
		return nil, err
	}

	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -30)
	}
	if !start.Before(end) {
		return nil, apperror.NewBadRequestError("Tanggal mulai harus sebelum tanggal akhir")
	}

	summary, err := s.analyticsRepo.GetSalesSummary(ctx, umkmID, start, end)
	if err != nil {
		return nil, err
	}

	average := 0.0
	if summary.TransactionCount > 0 {
		average = summary.TotalRevenue / float64(summary.TransactionCount)
	}

	return &SalesReportResult{
		UmkmID:             umkmID,
		PeriodStart:        start,
		PeriodEnd:          end,
		TotalTransactions:  summary.TransactionCount,
		TotalRevenue:       summary.TotalRevenue,
		TotalProfit:        summary.TotalRevenue * profitMargin,
		AverageTransaction: round2(average),
		TotalItemsSold:     summary.ItemsSold,
	}, nil
}

// GetTopProducts returns the best selling products over the last N days
func (s *AnalyticsService) GetTopProducts(ctx context.Context, umkmID uuid.UUID, limit, days int) ([]TopProductStat, error) {
	if err := s.ensureUmkm(ctx, umkmID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if days <= 0 {
		days = 30
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return s.getTopProducts(ctx, umkmID, start, end, limit)
}

// GetMonthlyReport returns month buckets for the last N months
func (s *AnalyticsService) GetMonthlyReport(ctx context.Context, umkmID uuid.UUID, months int) ([]MonthlyReportResult, error) {
	if err := s.ensureUmkm(ctx, umkmID); err != nil {
		return nil, err
	}
	if months <= 0 {
		months = 6
	}

	monthly, err := s.analyticsRepo.GetMonthlySales(ctx, umkmID, months)
	if err != nil {
		return nil, err
	}

	results := make([]MonthlyReportResult, 0, len(monthly))
	for _, m := range monthly {
		results = append(results, MonthlyReportResult{
			Month:            m.Month,
			Revenue:          m.Revenue,
			TransactionCount: m.TransactionCount,
			Profit:           m.Revenue * profitMargin,
		})
	}
	return results, nil
}

// GetPaymentMethodStats returns the payment method split for the last N days
func (s *AnalyticsService) GetPaymentMethodStats(ctx context.Context, umkmID uuid.UUID, days int) ([]PaymentMethodStat, error) {
	if err := s.ensureUmkm(ctx, umkmID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return s.getPaymentMethods(ctx, umkmID, start, end)
}

// GetHealthScore computes the four-part business health score: revenue
// growth, transaction consistency, product diversification and customer
// base, 25 points each.
func (s *AnalyticsService) GetHealthScore(ctx context.Context, umkmID uuid.UUID) (*HealthScoreResult, error) {
	if err := s.ensureUmkm(ctx, umkmID); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	prevStart := start.AddDate(0, 0, -30)

	breakdown := make(map[string]int)

	// Revenue growth (0-25 points)
	current, err := s.analyticsRepo.GetSalesSummary(ctx, umkmID, start, end)
	if err != nil {
		return nil, err
	}
	previous, err := s.analyticsRepo.GetSalesSummary(ctx, umkmID, prevStart, start)
	if err != nil {
		return nil, err
	}

	switch {
	case previous.TotalRevenue > 0:
		growth := (current.TotalRevenue - previous.TotalRevenue) / previous.TotalRevenue * 100
		switch {
		case growth >= 20:
			breakdown["revenue_growth"] = 25
		case growth >= 10:
			breakdown["revenue_growth"] = 20
		case growth >= 0:
			breakdown["revenue_growth"] = 15
		case growth >= -10:
			breakdown["revenue_growth"] = 10
		default:
			breakdown["revenue_growth"] = 5
		}
	case current.TotalRevenue > 0:
		breakdown["revenue_growth"] = 15
	default:
		breakdown["revenue_growth"] = 0
	}

	// Transaction consistency (0-25 points)
	activeDays, err := s.analyticsRepo.CountActiveSalesDays(ctx, umkmID, start, end)
	if err != nil {
		return nil, err
	}
	if activeDays > 0 {
		consistency := float64(activeDays) / 30 * 100
		switch {
		case consistency >= 80:
			breakdown["consistency"] = 25
		case consistency >= 60:
			breakdown["consistency"] = 20
		case consistency >= 40:
			breakdown["consistency"] = 15
		case consistency >= 20:
			breakdown["consistency"] = 10
		default:
			breakdown["consistency"] = 5
		}
	} else {
		breakdown["consistency"] = 0
	}

	// Product diversification (0-25 points)
	productsSold, err := s.analyticsRepo.CountDistinctProductsSold(ctx, umkmID, start, end)
	if err != nil {
		return nil, err
	}
	switch {
	case productsSold >= 20:
		breakdown["diversification"] = 25
	case productsSold >= 10:
		breakdown["diversification"] = 20
	case productsSold >= 5:
		breakdown["diversification"] = 15
	case productsSold >= 2:
		breakdown["diversification"] = 10
	default:
		breakdown["diversification"] = 5
	}

	// Customer base (0-25 points)
	activeCustomers, err := s.analyticsRepo.CountDistinctCustomers(ctx, umkmID, start, end)
	if err != nil {
		return nil, err
	}
	switch {
	case activeCustomers >= 50:
		breakdown["customer_base"] = 25
	case activeCustomers >= 25:
		breakdown["customer_base"] = 20
	case activeCustomers >= 10:
		breakdown["customer_base"] = 15
	case activeCustomers >= 5:
		breakdown["customer_base"] = 10
	default:
		breakdown["customer_base"] = 5
	}

	total := 0
	for _, v := range breakdown {
		total += v
	}

	var status, message string
	switch {
	case total >= 80:
		status = "Excellent"
		message = "Your business is performing exceptionally well!"
	case total >= 60:
		status = "Good"
		message = "Your business is on a healthy track with room for growth"
	case total >= 40:
		status = "Fair"
		message = "Your business shows potential but needs improvement in some areas"
	default:
		status = "Needs Attention"
		message = "Consider implementing the recommendations to improve business health"
	}

	return &HealthScoreResult{
		TotalScore: total,
		Status:     status,
		Message:    message,
		Breakdown:  breakdown,
		MaxScore:   100,
	}, nil
}

func (s *AnalyticsService) getTopProducts(ctx context.Context, umkmID uuid.UUID, start, end time.Time, limit int) ([]TopProductStat, error) {
	results, err := s.analyticsRepo.GetTopProducts(ctx, umkmID, start, end, limit)
	if err != nil {
		return nil, err
	}

	stats := make([]TopProductStat, 0, len(results))
	for _, r := range results {
		category := r.Category
		if category == "" {
			category = "Umum"
		}
		stats = append(stats, TopProductStat{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Category:     category,
			TotalSold:    r.QuantitySold,
			TotalRevenue: r.Revenue,
		})
	}
	return stats, nil
}

func (s *AnalyticsService) getPaymentMethods(ctx context.Context, umkmID uuid.UUID, start, end time.Time) ([]PaymentMethodStat, error) {
	results, err := s.analyticsRepo.GetPaymentMethodBreakdown(ctx, umkmID, start, end)
	if err != nil {
		return nil, err
	}

	var totalAmount float64
	for _, r := range results {
		totalAmount += r.Total
	}

	stats := make([]PaymentMethodStat, 0, len(results))
	for _, r := range results {
		percentage := 0.0
		if totalAmount > 0 {
			percentage = round2(r.Total / totalAmount * 100)
		}
		stats = append(stats, PaymentMethodStat{
			PaymentMethod: string(r.Method),
			Count:         r.Count,
			TotalAmount:   r.Total,
			Percentage:    percentage,
		})
	}
	return stats, nil
}

func (s *AnalyticsService) getDailySales(ctx context.Context, umkmID uuid.UUID, days int) ([]DailySalesStat, error) {
	results, err := s.analyticsRepo.GetDailySales(ctx, umkmID, days)
	if err != nil {
		return nil, err
	}

	stats := make([]DailySalesStat, 0, len(results))
	for _, r := range results {
		stats = append(stats, DailySalesStat{
			Date:             r.Date.Format("2006-01-02"),
			TransactionCount: r.TransactionCount,
			Revenue:          r.Revenue,
		})
	}
	return stats, nil
}
