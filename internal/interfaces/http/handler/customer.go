package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/storebooks/backend/internal/application/partner"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.GetByID)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
}

// Create creates a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.customerService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists customers in the store
func (h *CustomerHandler) List(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var filter partnerapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	customers, total, err := h.customerService.List(c.Request.Context(), storeID, filter)
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
	h.SuccessWithMeta(c, customers, total, page, pageSize)
}

// GetByID returns one customer
func (h *CustomerHandler) GetByID(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.customerService.GetByID(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update updates a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.customerService.Update(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes a customer. Invoices that reference it keep their
// snapshot of the customer's name.
func (h *CustomerHandler) Delete(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
