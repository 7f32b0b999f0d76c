package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/pkg/apperror"
	"github.com/garudaai/umkm-api/pkg/llm"
	"github.com/garudaai/umkm-api/pkg/logger"
	"github.com/google/uuid"
)

// TextGenerator produces completions from chat messages. Satisfied by
// llm.Client.
type TextGenerator interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// Prediction carries the model's estimates for next month
type Prediction struct {
	NextMonthRevenueEstimate     *float64 `json:"next_month_revenue_estimate"`
	NextMonthTransactionEstimate *int     `json:"next_month_transaction_estimate"`
	Confidence                   string   `json:"confidence"`
}

// BusinessInsights is the narrative insight payload
type BusinessInsights struct {
	Summary         string     `json:"summary"`
	Trends          []string   `json:"trends"`
	Recommendations []string   `json:"recommendations"`
	Predictions     Prediction `json:"predictions"`
}

// InsightService turns analytics aggregates into narrative insights through
// a language model, with a deterministic fallback when generation fails.
type InsightService struct {
	analytics     *AnalyticsService
	analyticsRepo repository.AnalyticsRepository
	umkmRepo      repository.UmkmRepository
	generator     TextGenerator
}

// NewInsightService creates a new insight service
func NewInsightService(
	analytics *AnalyticsService,
	analyticsRepo repository.AnalyticsRepository,
	umkmRepo repository.UmkmRepository,
	generator TextGenerator,
) *InsightService {
	return &InsightService{
		analytics:     analytics,
		analyticsRepo: analyticsRepo,
		umkmRepo:      umkmRepo,
		generator:     generator,
	}
}

type insightData struct {
	PeriodDays         int
	TotalRevenue       float64
	TotalTransactions  int
	AverageTransaction float64
	TotalCustomers     int64
	TotalProducts      int64
	PrevRevenue        float64
	PrevTransactions   int
	RevenueGrowth      float64
	TopProducts        []TopProductStat
	MonthlyReport      []MonthlyReportResult
	PaymentMethods     []PaymentMethodStat
	DailySales         []DailySalesStat
}

const insightSystemPrompt = `You are an expert business analyst for UMKM (Small and Medium Enterprises) in Indonesia.
Your role is to analyze business data and provide actionable insights, identify trends, and make predictions.

You will receive analytics data and must respond with a structured JSON containing:
- summary: A brief 1-2 sentence overview of business performance
- trends: Array of 3-5 key trends you identify (be specific with numbers and percentages)
- recommendations: Array of 3-5 actionable recommendations to improve the business
- predictions: Object with next_month_revenue_estimate, next_month_transaction_estimate, and confidence level

Be specific, data-driven, and provide insights in Bahasa Indonesia (casual/friendly tone).
Focus on practical advice that UMKM owners can implement immediately.`

// GenerateInsights analyzes the business's recent performance and returns
// narrative insights. The endpoint never fails because the model did: any
// generation or parsing problem falls back to a summary computed from the
// numbers.
func (s *InsightService) GenerateInsights(ctx context.Context, umkmID uuid.UUID, days int) (*BusinessInsights, error) {
	umkm, err := s.umkmRepo.GetByID(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	if umkm == nil {
		return nil, apperror.NewNotFoundError("UMKM")
	}
	if days <= 0 {
		days = 30
	}

	data, err := s.collectData(ctx, umkmID, days)
	if err != nil {
		return nil, err
	}

	if data.TotalTransactions == 0 {
		return &BusinessInsights{
			Summary:         "Start recording transactions to get personalized AI insights.",
			Trends:          []string{},
			Recommendations: []string{"Add your first transaction to begin tracking"},
			Predictions:     Prediction{Confidence: "low"},
		}, nil
	}

	insights, err := s.generate(ctx, data)
	if err != nil {
		logger.Error("insight generation failed, using fallback",
			"umkm_id", umkmID, "error", err)
		return s.fallback(data), nil
	}
	return insights, nil
}

func (s *InsightService) collectData(ctx context.Context, umkmID uuid.UUID, days int) (*insightData, error) {
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

	customers, err := s.analyticsRepo.CountCustomers(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	products, err := s.analyticsRepo.CountActiveProducts(ctx, umkmID)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.analytics.getTopProducts(ctx, umkmID, start, end, 10)
	if err != nil {
		return nil, err
	}
	monthly, err := s.analytics.GetMonthlyReport(ctx, umkmID, 6)
	if err != nil {
		return nil, err
	}
	paymentMethods, err := s.analytics.getPaymentMethods(ctx, umkmID, start, end)
	if err != nil {
		return nil, err
	}
	dailySales, err := s.analytics.getDailySales(ctx, umkmID, 7)
	if err != nil {
		return nil, err
	}

	average := 0.0
	if current.TransactionCount > 0 {
		average = round2(current.TotalRevenue / float64(current.TransactionCount))
	}
	growth := 0.0
	if previous.TotalRevenue > 0 {
		growth = round2((current.TotalRevenue - previous.TotalRevenue) / previous.TotalRevenue * 100)
	}

	return &insightData{
		PeriodDays:         days,
		TotalRevenue:       current.TotalRevenue,
		TotalTransactions:  current.TransactionCount,
		AverageTransaction: average,
		TotalCustomers:     customers,
		TotalProducts:      products,
		PrevRevenue:        previous.TotalRevenue,
		PrevTransactions:   previous.TransactionCount,
		RevenueGrowth:      growth,
		TopProducts:        topProducts,
		MonthlyReport:      monthly,
		PaymentMethods:     paymentMethods,
		DailySales:         dailySales,
	}, nil
}

func (s *InsightService) generate(ctx context.Context, data *insightData) (*BusinessInsights, error) {
	top := data.TopProducts
	if len(top) > 5 {
		top = top[:5]
	}
	topJSON, _ := json.MarshalIndent(top, "", "  ")
	monthlyJSON, _ := json.MarshalIndent(data.MonthlyReport, "", "  ")
	paymentJSON, _ := json.MarshalIndent(data.PaymentMethods, "", "  ")
	dailyJSON, _ := json.MarshalIndent(data.DailySales, "", "  ")

	userPrompt := fmt.Sprintf(`Analyze this UMKM business data and provide insights:

**Period**: Last %d days

**Current Performance**:
- Total Revenue: Rp %.0f
- Total Transactions: %d
- Average Transaction: Rp %.0f
- Total Customers: %d
- Active Products: %d

**Comparison with Previous Period**:
- Previous Revenue: Rp %.0f
- Previous Transactions: %d
- Revenue Growth: %.1f%%

**Top Products**:
%s

**Monthly Trend (Last 6 Months)**:
%s

**Payment Methods**:
%s

**Daily Sales (Last 7 Days)**:
%s

Provide insights in this exact JSON format:
{
    "summary": "string",
    "trends": ["trend1", "trend2", "trend3"],
    "recommendations": ["rec1", "rec2", "rec3"],
    "predictions": {
        "next_month_revenue_estimate": float or null,
        "next_month_transaction_estimate": int or null,
        "confidence": "high" | "medium" | "low"
    }
}`,
		data.PeriodDays,
		data.TotalRevenue, data.TotalTransactions, data.AverageTransaction,
		data.TotalCustomers, data.TotalProducts,
		data.PrevRevenue, data.PrevTransactions, data.RevenueGrowth,
		topJSON, monthlyJSON, paymentJSON, dailyJSON)

	reply, err := s.generator.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: insightSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   512,
		Temperature: 0.5,
		TopP:        0.5,
	})
	if err != nil {
		return nil, err
	}

	var insights BusinessInsights
	if err := json.Unmarshal([]byte(extractJSON(reply)), &insights); err != nil {
		return nil, fmt.Errorf("failed to parse insight response: %w", err)
	}

	if insights.Summary == "" {
		insights.Summary = "Analysis completed"
	}
	if len(insights.Trends) > 5 {
		insights.Trends = insights.Trends[:5]
	}
	if len(insights.Recommendations) > 5 {
		insights.Recommendations = insights.Recommendations[:5]
	}
	switch insights.Predictions.Confidence {
	case "high", "medium", "low":
	default:
		insights.Predictions.Confidence = "low"
	}

	return &insights, nil
}

// extractJSON strips a markdown code fence from the model reply, if present
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return text
}

// fallback builds deterministic insights straight from the aggregates
func (s *InsightService) fallback(data *insightData) *BusinessInsights {
	revenue := data.TotalRevenue
	transactions := data.TotalTransactions

	return &BusinessInsights{
		Summary: fmt.Sprintf("Analyzed %d transactions worth Rp %.0f over the last %d days",
			transactions, revenue, data.PeriodDays),
		Trends: []string{
			fmt.Sprintf("Revenue growth: %.1f%%", data.RevenueGrowth),
			fmt.Sprintf("Average transaction value: Rp %.0f", data.AverageTransaction),
		},
		Recommendations: []string{
			"Continue monitoring your business performance",
			"Focus on customer retention and satisfaction",
		},
		Predictions: Prediction{
			NextMonthRevenueEstimate:     &revenue,
			NextMonthTransactionEstimate: &transactions,
			Confidence:                   "low",
		},
	}
}
