package handler

import (
	"strconv"
	"time"

	"github.com/garudaai/umkm-api/internal/application/service"
	"github.com/garudaai/umkm-api/internal/domain/enum"
	"github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/internal/presentation/http/dto/request"
	"github.com/garudaai/umkm-api/internal/presentation/http/dto/response"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Create handles recording a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid: "+err.Error())
		return
	}

	items := make([]service.TransactionItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.TransactionItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		})
	}

	input := &service.CreateTransactionInput{
		UmkmID:          req.UmkmID,
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		TransactionType: enum.TransactionType(req.TransactionType),
		PaymentMethod:   enum.PaymentMethod(req.PaymentMethod),
		PaymentStatus:   enum.PaymentStatus(req.PaymentStatus),
		DiscountAmount:  req.DiscountAmount,
		TaxAmount:       req.TaxAmount,
		Notes:           req.Notes,
		CreatedBy:       *userID,
		Items:           items,
	}

	transaction, err := h.transactionService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaksi berhasil dibuat", transaction)
}

// List handles listing transactions with filters
func (h *TransactionHandler) List(c *gin.Context) {
	umkmID, err := uuid.Parse(c.Query("umkm_id"))
	if err != nil {
		response.BadRequest(c, "umkm_id wajib diisi")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		TransactionType: enum.TransactionType(c.Query("transaction_type")),
		PaymentStatus:   enum.PaymentStatus(c.Query("payment_status")),
		SortBy:          c.Query("sort_by"),
		SortOrder:       c.Query("sort_order"),
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	transactions, total, err := h.transactionService.List(c.Request.Context(), umkmID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(transactions,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Transaksi berhasil diambil", result)
}

// Get handles retrieving a single transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID transaksi tidak valid")
		return
	}

	transaction, err := h.transactionService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaksi berhasil diambil", transaction)
}

// Update handles a sparse transaction header update
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID transaksi tidak valid")
		return
	}

	var req request.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid: "+err.Error())
		return
	}

	input := &service.UpdateTransactionInput{
		CustomerID:     req.CustomerID,
		CustomerName:   req.CustomerName,
		DiscountAmount: req.DiscountAmount,
		TaxAmount:      req.TaxAmount,
		Notes:          req.Notes,
	}
	if req.PaymentMethod != nil {
		method := enum.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}
	if req.PaymentStatus != nil {
		status := enum.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &status
	}

	transaction, err := h.transactionService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaksi berhasil diperbarui", transaction)
}

// Delete handles removing a transaction and restoring stock
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID transaksi tidak valid")
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaksi berhasil dihapus", nil)
}
