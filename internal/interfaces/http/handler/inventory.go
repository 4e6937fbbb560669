package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/storebooks/backend/internal/application/inventory"
)

// InventoryHandler handles inventory item endpoints
type InventoryHandler struct {
	BaseHandler
	itemService *inventoryapp.ItemService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(itemService *inventoryapp.ItemService) *InventoryHandler {
	return &InventoryHandler{itemService: itemService}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/inventory/items")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:id", h.GetByID)
		items.PUT("/:id", h.Update)
		items.POST("/:id/adjust", h.AdjustQuantity)
		items.DELETE("/:id", h.Delete)
	}
}

// Create creates a new inventory item
func (h *InventoryHandler) Create(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var req inventoryapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.itemService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists items in the store
func (h *InventoryHandler) List(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var filter inventoryapp.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, total, err := h.itemService.List(c.Request.Context(), storeID, filter)
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
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// GetByID returns one item
func (h *InventoryHandler) GetByID(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	resp, err := h.itemService.GetByID(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update updates an item's details. Quantity is not updatable here; it only
// moves through adjustments and document reconciliation.
func (h *InventoryHandler) Update(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req inventoryapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.itemService.Update(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AdjustQuantity applies a manual stock correction
func (h *InventoryHandler) AdjustQuantity(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req inventoryapp.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.itemService.AdjustQuantity(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes an item
func (h *InventoryHandler) Delete(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
