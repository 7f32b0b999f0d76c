package handler

import (
	"strconv"

	"github.com/garudaai/umkm-api/internal/application/service"
	"github.com/garudaai/umkm-api/internal/presentation/http/dto/request"
	"github.com/garudaai/umkm-api/internal/presentation/http/dto/response"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles registering a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid: "+err.Error())
		return
	}

	input := &service.CreateCustomerInput{
		UmkmID: req.UmkmID,
		Name:   req.Name,
		Phone:  req.Phone,
	}

	customer, err := h.customerService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer berhasil dibuat", customer)
}

// List handles listing customers with search
func (h *CustomerHandler) List(c *gin.Context) {
	umkmID, err := uuid.Parse(c.Query("umkm_id"))
	if err != nil {
		response.BadRequest(c, "umkm_id wajib diisi")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	customers, total, err := h.customerService.List(c.Request.Context(), umkmID, params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(customers,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Customer berhasil diambil", result)
}

// Get handles retrieving a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID customer tidak valid")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer berhasil diambil", customer)
}

// Update handles a sparse customer update
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID customer tidak valid")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid: "+err.Error())
		return
	}

	input := &service.UpdateCustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer berhasil diperbarui", customer)
}

// Delete handles removing a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID customer tidak valid")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer berhasil dihapus", nil)
}
