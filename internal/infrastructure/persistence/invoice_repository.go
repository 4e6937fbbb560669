package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements trade.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForStore finds an active invoice with its lines by ID within a store
func (r *GormInvoiceRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*trade.Invoice, error) {
	var invoice trade.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ? AND id = ? AND is_active = ?", storeID, id, true).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAllForStore finds active invoices for a store with filtering
func (r *GormInvoiceRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]trade.Invoice, error) {
	var invoices []trade.Invoice
	query := r.applyFilter(r.scopedQuery(ctx, storeID), filter)
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// CountForStore counts active invoices matching the filter
func (r *GormInvoiceRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.scopedQuery(ctx, storeID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOutstandingByCustomer finds unpaid and partially paid invoices for a
// customer, newest invoice date first, with aggregate stats
func (r *GormInvoiceRepository) FindOutstandingByCustomer(ctx context.Context, storeID, customerID uuid.UUID) ([]trade.Invoice, *trade.OutstandingStats, error) {
	base := r.scopedQuery(ctx, storeID).
		Where("customer_id = ? AND status IN ?", customerID,
			[]string{trade.PaymentStatusUnpaid.String(), trade.PaymentStatusPartiallyPaid.String()})

	var invoices []trade.Invoice
	if err := base.Session(&gorm.Session{}).Order("invoice_date DESC").Find(&invoices).Error; err != nil {
		return nil, nil, err
	}

	var stats trade.OutstandingStats
	if err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount), 0) AS total_invoice_amount, COALESCE(SUM(due_amount), 0) AS total_due_amount, COUNT(*) AS invoice_count").
		Scan(&stats).Error; err != nil {
		return nil, nil, err
	}
	return invoices, &stats, nil
}

// ExistsByNumber checks if an invoice with the number exists in the store.
// Soft-deleted invoices count too: the unique index spans them, so a number
// is never reusable once issued.
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, storeID uuid.UUID, invoiceNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.Invoice{}).
		Where("store_id = ? AND invoice_number = ?", storeID, strings.TrimSpace(invoiceNumber)).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates an invoice together with its lines. Lines are
// replaced wholesale so removed ones disappear.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *trade.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(invoice).Error; err != nil {
			return err
		}
		return r.replaceLines(tx, invoice)
	})
}

// SaveWithLock saves an existing invoice with an optimistic version check.
// The version is incremented here: the aggregate's mutators run several to an
// update, so the bump belongs to the save, not to any single mutation.
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *trade.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expectedVersion := invoice.Version
		invoice.Version++
		result := tx.Model(&trade.Invoice{}).
			Where("id = ? AND version = ?", invoice.ID, expectedVersion).
			Updates(map[string]interface{}{
				"invoice_number": invoice.InvoiceNumber,
				"customer_id":    invoice.CustomerID,
				"customer_name":  invoice.CustomerName,
				"invoice_date":   invoice.InvoiceDate,
				"vehicle_number": invoice.VehicleNumber,
				"total_amount":   invoice.TotalAmount,
				"discount":       invoice.Discount,
				"customer_paid":  invoice.CustomerPaid,
				"due_amount":     invoice.DueAmount,
				"status":         invoice.Status,
				"payment_method": invoice.PaymentMethod,
				"notes":          invoice.Notes,
				"version":        invoice.Version,
				"updated_at":     invoice.UpdatedAt,
			})
		if result.Error != nil {
			invoice.Version = expectedVersion
			return result.Error
		}
		if result.RowsAffected == 0 {
			invoice.Version = expectedVersion
			return shared.ErrConcurrencyConflict
		}
		return r.replaceLines(tx, invoice)
	})
}

// SoftDeleteForStore clears the active flag on an invoice
func (r *GormInvoiceRepository) SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Invoice{}).
		Where("store_id = ? AND id = ? AND is_active = ?", storeID, id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormInvoiceRepository) replaceLines(tx *gorm.DB, invoice *trade.Invoice) error {
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&trade.LineItem{}).Error; err != nil {
		return err
	}
	if len(invoice.Items) == 0 {
		return nil
	}
	return tx.Create(&invoice.Items).Error
}

func (r *GormInvoiceRepository) scopedQuery(ctx context.Context, storeID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&trade.Invoice{}).
		Where("store_id = ? AND is_active = ?", storeID, true)
}

// applySearch matches any search token against the invoice number or the
// customer name snapshot
func (r *GormInvoiceRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	tokens := shared.TokenizeSearch(filter.Search)
	if len(tokens) > 0 {
		clauses := make([]string, 0, len(tokens)*2)
		args := make([]interface{}, 0, len(tokens)*2)
		for _, token := range tokens {
			pattern := "%" + strings.ToLower(token) + "%"
			clauses = append(clauses, "LOWER(invoice_number) LIKE ?", "LOWER(customer_name) LIKE ?")
			args = append(args, pattern, pattern)
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			query = query.Where("invoice_date >= ?", value)
		case "end_date":
			query = query.Where("invoice_date <= ?", value)
		}
	}
	return query
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "invoice_date")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}
