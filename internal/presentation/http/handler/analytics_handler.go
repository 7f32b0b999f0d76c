package handler

import (
	"strconv"
	"time"

	"github.com/garudaai/umkm-api/internal/application/service"
	"github.com/garudaai/umkm-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalyticsHandler handles analytics and report HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	insightService   *service.InsightService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, insightService *service.InsightService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		insightService:   insightService,
	}
}

func parseUmkmID(c *gin.Context) (uuid.UUID, bool) {
	umkmID, err := uuid.Parse(c.Query("umkm_id"))
	if err != nil {
		response.BadRequest(c, "umkm_id wajib diisi")
		return uuid.Nil, false
	}
	return umkmID, true
}

// Dashboard handles the dashboard summary request
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	umkmID, ok := parseUmkmID(c)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	result, err := h.analyticsService.GetDashboard(c.Request.Context(), umkmID, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard berhasil diambil", result)
}

// SalesReport handles the sales report request
func (h *AnalyticsHandler) SalesReport(c *gin.Context) {
	umkmID, ok := parseUmkmID(c)
	if !ok {
		return
	}

	var start, end time.Time
	if startStr := c.Query("start_date"); startStr != "" {
		parsed, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "start_date tidak valid")
			return
		}
		start = parsed
	}
	if endStr := c.Query("end_date"); endStr != "" {
		parsed, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "end_date tidak valid")
			return
		}
		end = parsed
	}

	result, err := h.analyticsService.GetSalesReport(c.Request.Context(), umkmID, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laporan penjualan berhasil diambil", result)
}

// TopProducts handles the top products request
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	umkmID, ok := parseUmkmID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	result, err := h.analyticsService.GetTopProducts(c.Request.Context(), umkmID, limit, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Produk terlaris berhasil diambil", result)
}

// MonthlyReport handles the monthly report request
func (h *AnalyticsHandler) MonthlyReport(c *gin.Context) {
	umkmID, ok := parseUmkmID(c)
	if !ok {
		return
	}
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	result, err := h.analyticsService.GetMonthlyReport(c.Request.Context(), umkmID, months)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laporan bulanan berhasil diambil", result)
}

// PaymentMethods handles the payment method stats request
func (h *AnalyticsHandler) PaymentMethods(c *gin.Context) {
	umkmID, ok := parseUmkmID(c)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	result, err := h.analyticsService.GetPaymentMethodStats(c.Request.Context(), umkmID, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statistik metode pembayaran berhasil diambil", result)
}

// HealthScore handles the business health score request
func (h *AnalyticsHandler) HealthScore(c *gin.Context) {
	umkmID, ok := parseUmkmID(c)
	if !ok {
		return
	}

	result, err := h.analyticsService.GetHealthScore(c.Request.Context(), umkmID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Skor kesehatan bisnis berhasil diambil", result)
}

// AIInsights handles the AI insight request
func (h *AnalyticsHandler) AIInsights(c *gin.Context) {
	umkmID, ok := parseUmkmID(c)
	if !ok {
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	result, err := h.insightService.GenerateInsights(c.Request.Context(), umkmID, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Insight berhasil dibuat", result)
}
