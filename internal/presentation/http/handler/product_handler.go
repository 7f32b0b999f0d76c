package handler

import (
	"strconv"

	"github.com/garudaai/umkm-api/internal/application/service"
	"github.com/garudaai/umkm-api/internal/domain/repository"
	"github.com/garudaai/umkm-api/internal/presentation/http/dto/request"
	"github.com/garudaai/umkm-api/internal/presentation/http/dto/response"
	"github.com/garudaai/umkm-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles adding a product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid: "+err.Error())
		return
	}

	input := &service.CreateProductInput{
		UmkmID:      req.UmkmID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Unit:        req.Unit,
		SKU:         req.SKU,
	}

	product, err := h.productService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product berhasil dibuat", product)
}

// List handles listing products with filters
func (h *ProductHandler) List(c *gin.Context) {
	umkmID, err := uuid.Parse(c.Query("umkm_id"))
	if err != nil {
		response.BadRequest(c, "umkm_id wajib diisi")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		ActiveOnly: c.DefaultQuery("is_active", "") == "true",
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	products, total, err := h.productService.List(c.Request.Context(), umkmID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Product berhasil diambil", result)
}

// LowStock handles listing products at or below the stock threshold
func (h *ProductHandler) LowStock(c *gin.Context) {
	umkmID, err := uuid.Parse(c.Query("umkm_id"))
	if err != nil {
		response.BadRequest(c, "umkm_id wajib diisi")
		return
	}

	threshold, _ := strconv.Atoi(c.DefaultQuery("threshold", "10"))

	products, err := h.productService.GetLowStock(c.Request.Context(), umkmID, threshold)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product stok rendah berhasil diambil", products)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID product tidak valid")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product berhasil diambil", product)
}

// Update handles a sparse product update
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID product tidak valid")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Permintaan tidak valid: "+err.Error())
		return
	}

	input := &service.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Unit:        req.Unit,
		SKU:         req.SKU,
		IsActive:    req.IsActive,
	}

	product, err := h.productService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product berhasil diperbarui", product)
}

// Delete handles removing a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "ID product tidak valid")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product berhasil dihapus", nil)
}
