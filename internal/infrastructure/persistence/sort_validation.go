package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC, defaulting to
// DESC on anything unexpected.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the sort field against a whitelist. User-supplied
// order_by values never reach SQL unchecked.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// StoreSortFields contains allowed sort fields for stores
var StoreSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
}

// ItemSortFields contains allowed sort fields for inventory items
var ItemSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"unit":           true,
	"purchase_price": true,
	"selling_price":  true,
	"quantity":       true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"invoice_date":   true,
	"customer_name":  true,
	"total_amount":   true,
	"due_amount":     true,
	"status":         true,
}

// PurchaseSortFields contains allowed sort fields for purchases
var PurchaseSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"purchase_number": true,
	"purchase_date":   true,
	"supplier_name":   true,
	"total_amount":    true,
	"due_amount":      true,
	"status":          true,
}

// PartnerSortFields contains allowed sort fields for customers and suppliers
var PartnerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"company_name": true,
	"phone":        true,
}
