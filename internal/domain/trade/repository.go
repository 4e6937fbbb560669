package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/shared"
)

// OutstandingStats aggregates the open balance of a customer's invoices
type OutstandingStats struct {
	TotalInvoiceAmount decimal.Decimal
	TotalDueAmount     decimal.Decimal
	InvoiceCount       int64
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByIDForStore finds an active invoice (with lines) by ID within a store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Invoice, error)

	// FindAllForStore finds active invoices for a store. Search tokens match
	// the invoice number or the customer name snapshot.
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// CountForStore counts active invoices matching the filter
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)

	// FindOutstandingByCustomer finds unpaid and partially paid invoices for
	// a customer, newest invoice date first, with aggregate stats.
	FindOutstandingByCustomer(ctx context.Context, storeID, customerID uuid.UUID) ([]Invoice, *OutstandingStats, error)

	// ExistsByNumber checks if an active invoice with the number exists in the store
	ExistsByNumber(ctx context.Context, storeID uuid.UUID, invoiceNumber string) (bool, error)

	// Save creates or updates an invoice together with its line items
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves an existing invoice with an optimistic version check
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// SoftDeleteForStore clears the active flag on an invoice
	SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	// FindByIDForStore finds an active purchase (with lines) by ID within a store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Purchase, error)

	// FindAllForStore finds active purchases for a store. Search tokens match
	// the purchase number or the supplier name snapshot.
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Purchase, error)

	// CountForStore counts active purchases matching the filter
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNumber checks if an active purchase with the number exists in the store
	ExistsByNumber(ctx context.Context, storeID uuid.UUID, purchaseNumber string) (bool, error)

	// Save creates or updates a purchase together with its lines
	Save(ctx context.Context, purchase *Purchase) error

	// SaveWithLock saves an existing purchase with an optimistic version check
	SaveWithLock(ctx context.Context, purchase *Purchase) error

	// SoftDeleteForStore clears the active flag on a purchase
	SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}
