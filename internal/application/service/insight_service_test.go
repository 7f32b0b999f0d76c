package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/garudaai/umkm-api/internal/infrastructure/database"
	"github.com/garudaai/umkm-api/internal/infrastructure/repository"
	"github.com/garudaai/umkm-api/pkg/llm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	reply string
	err   error

	lastRequest llm.CompletionRequest
}

func (g *stubGenerator) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	g.lastRequest = req
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newInsightService(db *database.DB, generator TextGenerator) *InsightService {
	analyticsRepo := repository.NewAnalyticsRepository(db)
	umkmRepo := repository.NewUmkmRepository(db)
	analytics := NewAnalyticsService(analyticsRepo, umkmRepo)
	return NewInsightService(analytics, analyticsRepo, umkmRepo, generator)
}

func TestInsightService_GenerateInsights_NoTransactions(t *testing.T) {
	db := newTestDB(t)
	gen := &stubGenerator{reply: "should not be called"}
	svc := newInsightService(db, gen)
	_, umkm := seedOwnerAndUmkm(t, db)

	insights, err := svc.GenerateInsights(context.Background(), umkm.ID, 30)
	require.NoError(t, err)

	assert.Equal(t, "Start recording transactions to get personalized AI insights.", insights.Summary)
	assert.Empty(t, insights.Trends)
	assert.Equal(t, []string{"Add your first transaction to begin tracking"}, insights.Recommendations)
	assert.Equal(t, "low", insights.Predictions.Confidence)
	assert.Empty(t, gen.lastRequest.Messages)
}

func TestInsightService_GenerateInsights_ParsesFencedReply(t *testing.T) {
	db := newTestDB(t)
	gen := &stubGenerator{reply: "```json\n" + `{
		"summary": "Penjualan stabil minggu ini",
		"trends": ["t1", "t2", "t3", "t4", "t5", "t6"],
		"recommendations": ["r1", "r2"],
		"predictions": {
			"next_month_revenue_estimate": 1500000,
			"next_month_transaction_estimate": 42,
			"confidence": "certainly"
		}
	}` + "\n```"}
	svc := newInsightService(db, gen)
	user, umkm := seedOwnerAndUmkm(t, db)
	seedPaidSale(t, db, umkm, user.ID, time.Now().AddDate(0, 0, -1), 2500000, nil)

	insights, err := svc.GenerateInsights(context.Background(), umkm.ID, 30)
	require.NoError(t, err)

	assert.Equal(t, "Penjualan stabil minggu ini", insights.Summary)
	assert.Len(t, insights.Trends, 5)
	assert.Equal(t, []string{"r1", "r2"}, insights.Recommendations)
	require.NotNil(t, insights.Predictions.NextMonthRevenueEstimate)
	assert.InDelta(t, 1500000.0, *insights.Predictions.NextMonthRevenueEstimate, 0.01)
	require.NotNil(t, insights.Predictions.NextMonthTransactionEstimate)
	assert.Equal(t, 42, *insights.Predictions.NextMonthTransactionEstimate)
	assert.Equal(t, "low", insights.Predictions.Confidence)

	require.Len(t, gen.lastRequest.Messages, 2)
	assert.Equal(t, "system", gen.lastRequest.Messages[0].Role)
	assert.Equal(t, 512, gen.lastRequest.MaxTokens)
	assert.InDelta(t, 0.5, gen.lastRequest.Temperature, 0.001)
}

func TestInsightService_GenerateInsights_FallbackOnGeneratorError(t *testing.T) {
	db := newTestDB(t)
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	svc := newInsightService(db, gen)
	user, umkm := seedOwnerAndUmkm(t, db)
	seedPaidSale(t, db, umkm, user.ID, time.Now().AddDate(0, 0, -1), 5000000, nil)

	insights, err := svc.GenerateInsights(context.Background(), umkm.ID, 30)
	require.NoError(t, err)

	assert.Contains(t, insights.Summary, "Analyzed 1 transactions worth Rp 50000")
	assert.NotEmpty(t, insights.Trends)
	assert.NotEmpty(t, insights.Recommendations)
	assert.Equal(t, "low", insights.Predictions.Confidence)
	require.NotNil(t, insights.Predictions.NextMonthRevenueEstimate)
	assert.InDelta(t, 50000.0, *insights.Predictions.NextMonthRevenueEstimate, 0.01)
}

func TestInsightService_GenerateInsights_FallbackOnMalformedReply(t *testing.T) {
	db := newTestDB(t)
	gen := &stubGenerator{reply: "maaf, saya tidak bisa membantu dengan itu"}
	svc := newInsightService(db, gen)
	user, umkm := seedOwnerAndUmkm(t, db)
	seedPaidSale(t, db, umkm, user.ID, time.Now().AddDate(0, 0, -1), 1000000, nil)

	insights, err := svc.GenerateInsights(context.Background(), umkm.ID, 30)
	require.NoError(t, err)
	assert.Contains(t, insights.Summary, "Analyzed 1 transactions")
}

func TestInsightService_GenerateInsights_UnknownBusiness(t *testing.T) {
	db := newTestDB(t)
	svc := newInsightService(db, &stubGenerator{})

	_, err := svc.GenerateInsights(context.Background(), uuid.New(), 30)
	require.Error(t, err)
	assert.Equal(t, "UMKM tidak ditemukan", err.Error())
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`{"a":1}`))
}
