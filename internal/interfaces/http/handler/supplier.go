package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/storebooks/backend/internal/application/partner"
)

// SupplierHandler handles supplier endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// RegisterRoutes registers supplier routes
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", h.Create)
		suppliers.GET("", h.List)
		suppliers.GET("/:id", h.GetByID)
		suppliers.PUT("/:id", h.Update)
		suppliers.DELETE("/:id", h.Delete)
	}
}

// Create creates a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.supplierService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists suppliers in the store
func (h *SupplierHandler) List(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var filter partnerapp.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	suppliers, total, err := h.supplierService.List(c.Request.Context(), storeID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, suppliers, total, page, pageSize)
}

// GetByID returns one supplier
func (h *SupplierHandler) GetByID(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	resp, err := h.supplierService.GetByID(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update updates a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.supplierService.Update(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
