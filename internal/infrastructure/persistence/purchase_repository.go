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

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByIDForStore finds an active purchase with its lines by ID within a store
func (r *GormPurchaseRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ? AND id = ? AND is_active = ?", storeID, id, true).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAllForStore finds active purchases for a store with filtering
func (r *GormPurchaseRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	var purchases []trade.Purchase
	query := r.applyFilter(r.scopedQuery(ctx, storeID), filter)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// CountForStore counts active purchases matching the filter
func (r *GormPurchaseRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.scopedQuery(ctx, storeID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a purchase with the number exists in the store.
// Soft-deleted purchases count too: the unique index spans them, so a number
// is never reusable once issued.
func (r *GormPurchaseRepository) ExistsByNumber(ctx context.Context, storeID uuid.UUID, purchaseNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.Purchase{}).
		Where("store_id = ? AND purchase_number = ?", storeID, strings.TrimSpace(purchaseNumber)).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates a purchase together with its lines
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(purchase).Error; err != nil {
			return err
		}
		return r.replaceLines(tx, purchase)
	})
}

// SaveWithLock saves an existing purchase with an optimistic version check.
// The version is incremented here, in the save, mirroring the invoice
// repository.
func (r *GormPurchaseRepository) SaveWithLock(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expectedVersion := purchase.Version
		purchase.Version++
		result := tx.Model(&trade.Purchase{}).
			Where("id = ? AND version = ?", purchase.ID, expectedVersion).
			Updates(map[string]interface{}{
				"purchase_number": purchase.PurchaseNumber,
				"supplier_id":     purchase.SupplierID,
				"supplier_name":   purchase.SupplierName,
				"purchase_date":   purchase.PurchaseDate,
				"total_amount":    purchase.TotalAmount,
				"amount_paid":     purchase.AmountPaid,
				"due_amount":      purchase.DueAmount,
				"status":          purchase.Status,
				"payment_method":  purchase.PaymentMethod,
				"notes":           purchase.Notes,
				"version":         purchase.Version,
				"updated_at":      purchase.UpdatedAt,
			})
		if result.Error != nil {
			purchase.Version = expectedVersion
			return result.Error
		}
		if result.RowsAffected == 0 {
			purchase.Version = expectedVersion
			return shared.ErrConcurrencyConflict
		}
		return r.replaceLines(tx, purchase)
	})
}

// SoftDeleteForStore clears the active flag on a purchase
func (r *GormPurchaseRepository) SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Purchase{}).
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

func (r *GormPurchaseRepository) replaceLines(tx *gorm.DB, purchase *trade.Purchase) error {
	if err := tx.Where("purchase_id = ?", purchase.ID).Delete(&trade.PurchaseLine{}).Error; err != nil {
		return err
	}
	if len(purchase.Items) == 0 {
		return nil
	}
	return tx.Create(&purchase.Items).Error
}

func (r *GormPurchaseRepository) scopedQuery(ctx context.Context, storeID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&trade.Purchase{}).
		Where("store_id = ? AND is_active = ?", storeID, true)
}

// applySearch matches any search token against the purchase number or the
// supplier name snapshot
func (r *GormPurchaseRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	tokens := shared.TokenizeSearch(filter.Search)
	if len(tokens) > 0 {
		clauses := make([]string, 0, len(tokens)*2)
		args := make([]interface{}, 0, len(tokens)*2)
		for _, token := range tokens {
			pattern := "%" + strings.ToLower(token) + "%"
			clauses = append(clauses, "LOWER(purchase_number) LIKE ?", "LOWER(supplier_name) LIKE ?")
			args = append(args, pattern, pattern)
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			query = query.Where("purchase_date >= ?", value)
		case "end_date":
			query = query.Where("purchase_date <= ?", value)
		}
	}
	return query
}

func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PurchaseSortFields, "purchase_date")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}
