package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/shared"
)

// Item represents a stock-keeping unit scoped to one store. It is the
// aggregate root for inventory operations.
//
// Quantity only moves through the repository's atomic adjustment operations,
// fed by manual corrections and invoice/purchase reconciliation. Deltas never
// pass through the aggregate in memory because concurrent mutations must not
// read-modify-write.
type Item struct {
	shared.StoreAggregateRoot
	Name          string          `gorm:"type:varchar(200);not null;index"`
	Unit          Unit            `gorm:"type:varchar(20);not null;default:'Piece'"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	// Quantity may go negative when concurrent sales outrun restocking.
	// The ledger records what happened; it does not enforce a floor.
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new inventory item for a store
func NewInventoryItem(storeID uuid.UUID, name string, unit Unit, purchasePrice, sellingPrice, quantity decimal.Decimal) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot exceed 200 characters")
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unknown unit of measure")
	}
	if purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	return &Item{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               name,
		Unit:               unit,
		PurchasePrice:      purchasePrice,
		SellingPrice:       sellingPrice,
		Quantity:           quantity,
	}, nil
}

// UpdateDetails updates name, unit and prices after validating them
func (i *Item) UpdateDetails(name string, unit Unit, purchasePrice, sellingPrice decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if !unit.IsValid() {
		return shared.NewDomainError("INVALID_UNIT", "Unknown unit of measure")
	}
	if purchasePrice.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	i.Name = name
	i.Unit = unit
	i.PurchasePrice = purchasePrice
	i.SellingPrice = sellingPrice
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// StockValue returns the purchase value of the current stock
func (i *Item) StockValue() decimal.Decimal {
	return i.Quantity.Mul(i.PurchasePrice)
}
