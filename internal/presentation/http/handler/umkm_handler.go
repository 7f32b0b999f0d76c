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

// UmkmHandler handles business profile HTTP requests
type UmkmHandler struct {
	umkmService *service.UmkmService
}

// NewUmkmHandler creates a new business profile handler
func NewUmkmHandler(umkmService *service.UmkmService) *UmkmHandler {
	return &UmkmHandler{umkmService: umkmService}
}

// Create handles registering a new business
func (h *UmkmHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateUmkmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid: "+err.Error())
		return
	}

	input := &service.CreateUmkmInput{
		OwnerID:         *userID,
		BusinessName:    req.BusinessName,
		BusinessType:    req.BusinessType,
		Description:     req.Description,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		EstablishedYear: req.EstablishedYear,
		EmployeeCount:   req.EmployeeCount,
		MonthlyRevenue:  req.MonthlyRevenue,
	}

	umkm, err := h.umkmService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "UMKM berhasil dibuat", umkm)
}

// List handles listing the authenticated user's businesses
func (h *UmkmHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	businesses, total, err := h.umkmService.ListByOwner(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(businesses,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "UMKM berhasil diambil", result)
}

// Get handles retrieving a single business
func (h *UmkmHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID UMKM tidak valid")
		return
	}

	umkm, err := h.umkmService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "UMKM berhasil diambil", umkm)
}

// Update handles a sparse business profile update
func (h *UmkmHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID UMKM tidak valid")
		return
	}

	var req request.UpdateUmkmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid: "+err.Error())
		return
	}

	input := &service.UpdateUmkmInput{
		BusinessName:    req.BusinessName,
		BusinessType:    req.BusinessType,
		Description:     req.Description,
		Address:         req.Address,
		Phone:           req.Phone,
		Email:           req.Email,
		EstablishedYear: req.EstablishedYear,
		EmployeeCount:   req.EmployeeCount,
		MonthlyRevenue:  req.MonthlyRevenue,
	}

	umkm, err := h.umkmService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "UMKM berhasil diperbarui", umkm)
}
