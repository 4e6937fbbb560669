package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/inventory"
	"github.com/storebooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByIDForStore finds an active item by ID within a store
func (r *GormItemRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ? AND is_active = ?", storeID, id, true).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDsForStore finds active items by IDs within a store
func (r *GormItemRepository) FindByIDsForStore(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]inventory.Item, error) {
	if len(ids) == 0 {
		return []inventory.Item{}, nil
	}
	var items []inventory.Item
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id IN ? AND is_active = ?", storeID, ids, true).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAllForStore finds active items for a store with filtering
func (r *GormItemRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := r.applyFilter(r.scopedQuery(ctx, storeID), filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountForStore counts active items matching the filter
func (r *GormItemRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.scopedQuery(ctx, storeID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks for an active item with the given name, case-insensitively
func (r *GormItemRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.scopedQuery(ctx, storeID).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	return count > 0, err
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveWithLock saves an item's details with an optimistic version check. The
// quantity column is deliberately excluded: it only moves through the atomic
// adjust operations, so a stale detail edit can never clobber concurrent
// stock movements.
func (r *GormItemRepository) SaveWithLock(ctx context.Context, item *inventory.Item) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"name":           item.Name,
			"unit":           item.Unit,
			"purchase_price": item.PurchasePrice,
			"selling_price":  item.SellingPrice,
			"version":        item.Version,
			"updated_at":     item.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// SoftDeleteForStore clears the active flag on an item
func (r *GormItemRepository) SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
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

// AdjustQuantity atomically increments an item's quantity by delta. The
// increment happens in SQL, so concurrent adjustments never lose updates.
func (r *GormItemRepository) AdjustQuantity(ctx context.Context, storeID, itemID uuid.UUID, delta decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("store_id = ? AND id = ? AND is_active = ?", storeID, itemID, true).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// BulkAdjustQuantities applies all adjustments within one transaction. When
// called inside an outer transaction scope, GORM nests it with a savepoint.
func (r *GormItemRepository) BulkAdjustQuantities(ctx context.Context, storeID uuid.UUID, adjustments []inventory.Adjustment) error {
	if len(adjustments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewGormItemRepository(tx)
		for _, adjustment := range adjustments {
			if err := repo.AdjustQuantity(ctx, storeID, adjustment.ItemID, adjustment.Delta); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormItemRepository) scopedQuery(ctx context.Context, storeID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("store_id = ? AND is_active = ?", storeID, true)
}

// applySearch matches any search token against the name, or the whole search
// text against the selling price when it parses as a number
func (r *GormItemRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	tokens := shared.TokenizeSearch(filter.Search)
	if len(tokens) > 0 {
		clauses := make([]string, 0, len(tokens)+1)
		args := make([]interface{}, 0, len(tokens)+1)
		for _, token := range tokens {
			clauses = append(clauses, "LOWER(name) LIKE ?")
			args = append(args, "%"+strings.ToLower(token)+"%")
		}
		if price, err := decimal.NewFromString(strings.TrimSpace(filter.Search)); err == nil {
			clauses = append(clauses, "selling_price = ?")
			args = append(args, price)
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	if unit, ok := filter.Filters["unit"]; ok {
		query = query.Where("unit = ?", unit)
	}
	return query
}

func (r *GormItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ItemSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}
