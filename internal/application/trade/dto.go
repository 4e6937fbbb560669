package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/trade"
)

// ==================== Invoice DTOs ====================

// InvoiceLineInput represents one line in a create or update invoice request.
// Inventory-backed lines reference an item and snapshot its name and unit;
// custom service lines carry their own name and unit and never touch stock.
type InvoiceLineInput struct {
	ItemID          *uuid.UUID       `json:"item_id"`
	Name            string           `json:"name" binding:"max=200"`
	Unit            string           `json:"unit" binding:"max=20"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	SellingPrice    *decimal.Decimal `json:"selling_price"`
	Discount        decimal.Decimal  `json:"discount"`
	IsCustomService bool             `json:"is_custom_service"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	InvoiceNumber string             `json:"invoice_number" binding:"required,min=1,max=50"`
	CustomerID    uuid.UUID          `json:"customer_id" binding:"required"`
	CustomerName  string             `json:"customer_name" binding:"required,min=1,max=200"`
	InvoiceDate   time.Time          `json:"invoice_date" binding:"required"`
	VehicleNumber string             `json:"vehicle_number" binding:"max=50"`
	Items         []InvoiceLineInput `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal    `json:"discount"`
	CustomerPaid  decimal.Decimal    `json:"customer_paid"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
}

// UpdateInvoiceRequest replaces the invoice's content wholesale. The previous
// stock effect is reverted and the new lines are applied in the same
// transaction.
type UpdateInvoiceRequest struct {
	CustomerID    uuid.UUID          `json:"customer_id" binding:"required"`
	CustomerName  string             `json:"customer_name" binding:"required,min=1,max=200"`
	InvoiceDate   time.Time          `json:"invoice_date" binding:"required"`
	VehicleNumber string             `json:"vehicle_number" binding:"max=50"`
	Items         []InvoiceLineInput `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal    `json:"discount"`
	CustomerPaid  decimal.Decimal    `json:"customer_paid"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
}

// RecordPaymentRequest represents a request to record a payment against an
// invoice or purchase
type RecordPaymentRequest struct {
	AmountPaid    decimal.Decimal `json:"amount_paid" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search     string               `form:"search"`
	CustomerID *uuid.UUID           `form:"customer_id"`
	Status     *trade.PaymentStatus `form:"status"`
	StartDate  *time.Time           `form:"start_date"`
	EndDate    *time.Time           `form:"end_date"`
	Page       int                  `form:"page" binding:"omitempty,min=1"`
	PageSize   int                  `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string               `form:"order_by"`
	OrderDir   string               `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LineItemResponse represents an invoice line in responses
type LineItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ItemID          *uuid.UUID      `json:"item_id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	Discount        decimal.Decimal `json:"discount"`
	Amount          decimal.Decimal `json:"amount"`
	IsCustomService bool            `json:"is_custom_service"`
}

// InvoiceResponse represents an invoice in responses
type InvoiceResponse struct {
	ID            uuid.UUID          `json:"id"`
	StoreID       uuid.UUID          `json:"store_id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    uuid.UUID          `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	InvoiceDate   time.Time          `json:"invoice_date"`
	VehicleNumber string             `json:"vehicle_number,omitempty"`
	Items         []LineItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Discount      decimal.Decimal    `json:"discount"`
	CustomerPaid  decimal.Decimal    `json:"customer_paid"`
	DueAmount     decimal.Decimal    `json:"due_amount"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes,omitempty"`
	Version       int                `json:"version"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// InvoiceListItemResponse represents an invoice in list responses
type InvoiceListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DueAmount     decimal.Decimal `json:"due_amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OutstandingResponse represents a customer's open invoices with aggregate totals
type OutstandingResponse struct {
	Invoices           []InvoiceListItemResponse `json:"invoices"`
	TotalInvoiceAmount decimal.Decimal           `json:"total_invoice_amount"`
	TotalDueAmount     decimal.Decimal           `json:"total_due_amount"`
	InvoiceCount       int64                     `json:"invoice_count"`
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(inv *trade.Invoice) InvoiceResponse {
	items := make([]LineItemResponse, len(inv.Items))
	for i, line := range inv.Items {
		items[i] = LineItemResponse{
			ID:              line.ID,
			ItemID:          line.ItemID,
			Name:            line.Name,
			Unit:            line.Unit,
			Quantity:        line.Quantity,
			SellingPrice:    line.SellingPrice,
			Discount:        line.Discount,
			Amount:          line.Amount,
			IsCustomService: line.IsCustomService,
		}
	}
	return InvoiceResponse{
		ID:            inv.ID,
		StoreID:       inv.StoreID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		InvoiceDate:   inv.InvoiceDate,
		VehicleNumber: inv.VehicleNumber,
		Items:         items,
		TotalAmount:   inv.TotalAmount,
		Discount:      inv.Discount,
		CustomerPaid:  inv.CustomerPaid,
		DueAmount:     inv.DueAmount,
		Status:        inv.Status.String(),
		PaymentMethod: inv.PaymentMethod.String(),
		Notes:         inv.Notes,
		Version:       inv.Version,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToInvoiceListItemResponse converts a domain invoice to a list item DTO
func ToInvoiceListItemResponse(inv *trade.Invoice) InvoiceListItemResponse {
	return InvoiceListItemResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		InvoiceDate:   inv.InvoiceDate,
		TotalAmount:   inv.TotalAmount,
		DueAmount:     inv.DueAmount,
		Status:        inv.Status.String(),
		CreatedAt:     inv.CreatedAt,
	}
}

// ==================== Purchase DTOs ====================

// PurchaseLineInput represents one line in a create or update purchase
// request. Lines without an item reference are expense-only entries.
type PurchaseLineInput struct {
	ItemID        *uuid.UUID       `json:"item_id"`
	Name          string           `json:"name" binding:"max=200"`
	Unit          string           `json:"unit" binding:"max=20"`
	Quantity      decimal.Decimal  `json:"quantity" binding:"required"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
}

// CreatePurchaseRequest represents a request to create a purchase
type CreatePurchaseRequest struct {
	PurchaseNumber string              `json:"purchase_number" binding:"required,min=1,max=50"`
	SupplierID     uuid.UUID           `json:"supplier_id" binding:"required"`
	SupplierName   string              `json:"supplier_name" binding:"required,min=1,max=200"`
	PurchaseDate   time.Time           `json:"purchase_date" binding:"required"`
	Items          []PurchaseLineInput `json:"items" binding:"required,min=1,dive"`
	AmountPaid     decimal.Decimal     `json:"amount_paid"`
	PaymentMethod  string              `json:"payment_method"`
	Notes          string              `json:"notes"`
}

// UpdatePurchaseRequest replaces the purchase's content wholesale
type UpdatePurchaseRequest struct {
	SupplierID    uuid.UUID           `json:"supplier_id" binding:"required"`
	SupplierName  string              `json:"supplier_name" binding:"required,min=1,max=200"`
	PurchaseDate  time.Time           `json:"purchase_date" binding:"required"`
	Items         []PurchaseLineInput `json:"items" binding:"required,min=1,dive"`
	AmountPaid    decimal.Decimal     `json:"amount_paid"`
	PaymentMethod string              `json:"payment_method"`
	Notes         string              `json:"notes"`
}

// PurchaseListFilter represents filter options for the purchase list
type PurchaseListFilter struct {
	Search     string               `form:"search"`
	SupplierID *uuid.UUID           `form:"supplier_id"`
	Status     *trade.PaymentStatus `form:"status"`
	StartDate  *time.Time           `form:"start_date"`
	EndDate    *time.Time           `form:"end_date"`
	Page       int                  `form:"page" binding:"omitempty,min=1"`
	PageSize   int                  `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string               `form:"order_by"`
	OrderDir   string               `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PurchaseLineResponse represents a purchase line in responses
type PurchaseLineResponse struct {
	ID            uuid.UUID       `json:"id"`
	ItemID        *uuid.UUID      `json:"item_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Amount        decimal.Decimal `json:"amount"`
}

// PurchaseResponse represents a purchase in responses
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	StoreID        uuid.UUID              `json:"store_id"`
	PurchaseNumber string                 `json:"purchase_number"`
	SupplierID     uuid.UUID              `json:"supplier_id"`
	SupplierName   string                 `json:"supplier_name"`
	PurchaseDate   time.Time              `json:"purchase_date"`
	Items          []PurchaseLineResponse `json:"items"`
	TotalAmount    decimal.Decimal        `json:"total_amount"`
	AmountPaid     decimal.Decimal        `json:"amount_paid"`
	DueAmount      decimal.Decimal        `json:"due_amount"`
	Status         string                 `json:"status"`
	PaymentMethod  string                 `json:"payment_method"`
	Notes          string                 `json:"notes,omitempty"`
	Version        int                    `json:"version"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// PurchaseListItemResponse represents a purchase in list responses
type PurchaseListItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	PurchaseNumber string          `json:"purchase_number"`
	SupplierID     uuid.UUID       `json:"supplier_id"`
	SupplierName   string          `json:"supplier_name"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	DueAmount      decimal.Decimal `json:"due_amount"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToPurchaseResponse converts a domain purchase to a response DTO
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	items := make([]PurchaseLineResponse, len(p.Items))
	for i, line := range p.Items {
		items[i] = PurchaseLineResponse{
			ID:            line.ID,
			ItemID:        line.ItemID,
			Name:          line.Name,
			Unit:          line.Unit,
			Quantity:      line.Quantity,
			PurchasePrice: line.PurchasePrice,
			Amount:        line.Amount,
		}
	}
	return PurchaseResponse{
		ID:             p.ID,
		StoreID:        p.StoreID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		PurchaseDate:   p.PurchaseDate,
		Items:          items,
		TotalAmount:    p.TotalAmount,
		AmountPaid:     p.AmountPaid,
		DueAmount:      p.DueAmount,
		Status:         p.Status.String(),
		PaymentMethod:  p.PaymentMethod.String(),
		Notes:          p.Notes,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToPurchaseListItemResponse converts a domain purchase to a list item DTO
func ToPurchaseListItemResponse(p *trade.Purchase) PurchaseListItemResponse {
	return PurchaseListItemResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		PurchaseDate:   p.PurchaseDate,
		TotalAmount:    p.TotalAmount,
		DueAmount:      p.DueAmount,
		Status:         p.Status.String(),
		CreatedAt:      p.CreatedAt,
	}
}
