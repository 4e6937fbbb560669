package handler

import (
	"github.com/gin-gonic/gin"
	storeapp "github.com/storebooks/backend/internal/application/store"
)

// StoreHandler handles store administration endpoints. These routes are not
// store-scoped: they manage the set of stores itself.
type StoreHandler struct {
	BaseHandler
	storeService *storeapp.Service
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *storeapp.Service) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// RegisterRoutes registers store routes
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stores := rg.Group("/stores")
	{
		stores.POST("", h.Create)
		stores.GET("", h.List)
		stores.GET("/:id", h.GetByID)
		stores.PUT("/:id", h.Update)
		stores.DELETE("/:id", h.Deactivate)
		stores.POST("/:id/activate", h.Activate)
	}
}

// Create creates a new store
func (h *StoreHandler) Create(c *gin.Context) {
	var req storeapp.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.storeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists stores
func (h *StoreHandler) List(c *gin.Context) {
	var filter storeapp.StoreListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	stores, total, err := h.storeService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, stores, total, page, pageSize)
}

// GetByID returns one store
func (h *StoreHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	resp, err := h.storeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update renames a store
func (h *StoreHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req storeapp.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.storeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate soft-deletes a store
func (h *StoreHandler) Deactivate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	if err := h.storeService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate reactivates a store
func (h *StoreHandler) Activate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	if err := h.storeService.Activate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
