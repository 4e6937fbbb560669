package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/storebooks/backend/internal/application/trade"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *tradeapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *tradeapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.GetByID)
		invoices.PUT("/:id", h.Update)
		invoices.POST("/:id/payment", h.RecordPayment)
		invoices.DELETE("/:id", h.Delete)
	}
	rg.GET("/customers/:id/outstanding", h.OutstandingByCustomer)
}

// Create creates an invoice and consumes stock for its lines
func (h *InvoiceHandler) Create(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var req tradeapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.invoiceService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists invoices in the store
func (h *InvoiceHandler) List(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	var filter tradeapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), storeID, filter)
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
	h.SuccessWithMeta(c, invoices, total, page, pageSize)
}

// GetByID returns one invoice with its lines
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.GetByID(c.Request.Context(), storeID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update replaces an invoice's content, reverting the old stock effect and
// applying the new one atomically
func (h *InvoiceHandler) Update(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req tradeapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.invoiceService.Update(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordPayment updates the paid amount without touching stock
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req tradeapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.invoiceService.RecordPayment(c.Request.Context(), storeID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes an invoice and restores its stock
func (h *InvoiceHandler) Delete(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), storeID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// OutstandingByCustomer returns a customer's open invoices with totals
func (h *InvoiceHandler) OutstandingByCustomer(c *gin.Context) {
	storeID, ok := getStoreID(c)
	if !ok {
		h.MissingStoreScope(c)
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.invoiceService.GetOutstandingByCustomer(c.Request.Context(), storeID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
