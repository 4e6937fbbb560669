package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/shared"
)

// Adjustment is one signed quantity delta against an inventory item. Positive
// deltas restock, negative deltas consume.
type Adjustment struct {
	ItemID uuid.UUID
	Delta  decimal.Decimal
}

// ItemRepository defines the interface for inventory item persistence.
//
// AdjustQuantity and BulkAdjustQuantities must be implemented as atomic
// increments at the storage layer (quantity = quantity + delta). They are the
// only safe way to mutate quantity under concurrent invoice traffic.
type ItemRepository interface {
	// FindByIDForStore finds an active item by ID within a store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Item, error)

	// FindByIDsForStore finds active items by IDs within a store
	FindByIDsForStore(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]Item, error)

	// FindAllForStore finds active items for a store with filtering. The
	// filter's search is tokenized; items match when any token is a partial
	// case-insensitive name match or the whole search equals the selling price.
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Item, error)

	// CountForStore counts active items matching the filter
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByName checks for an active item with the given name in the
	// store, case-insensitively
	ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// SaveWithLock saves an existing item with an optimistic version check
	SaveWithLock(ctx context.Context, item *Item) error

	// SoftDeleteForStore clears the active flag on an item
	SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error

	// AdjustQuantity atomically increments an item's quantity by delta
	AdjustQuantity(ctx context.Context, storeID, itemID uuid.UUID, delta decimal.Decimal) error

	// BulkAdjustQuantities applies many adjustments within one transaction
	BulkAdjustQuantities(ctx context.Context, storeID uuid.UUID, adjustments []Adjustment) error
}
