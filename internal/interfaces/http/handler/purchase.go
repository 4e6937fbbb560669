package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/storebooks/backend/internal/application/trade"
)

// PurchaseHandler handles supplier purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.GET("", h.List)
		purchases.GET("/:id", h.GetByID)
		purchases.PUT("/:id", h.Update)
		purchases.POST("/:id/payment", h.RecordPayment)
		purchases.DELETE("/:id", h.Delete)
	}
}

// Create creates a purchase and restocks inventory for its lines
func (h *PurchaseHandler) Create(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.purchaseService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists purchases in the store
func (h *PurchaseHandler) List(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var filter tradeapp.PurchaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	purchases, total, err := h.purchaseService.List(c.Request.Context(), storeID, filter)
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
	h.SuccessWithMeta(c, purchases, total, page, pageSize)
}

// GetByID returns one purchase with its lines
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	resp, err := h.purchaseService.GetByID(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update replaces a purchase's content, reverting the old stock effect and
// applying the new one atomically
func (h *PurchaseHandler) Update(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req tradeapp.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.purchaseService.Update(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordPayment updates the paid amount without touching stock
func (h *PurchaseHandler) RecordPayment(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req tradeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.purchaseService.RecordPayment(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes a purchase and removes its stock contribution
func (h *PurchaseHandler) Delete(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
