package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/inventory"
)

// CreateItemRequest represents a request to create an inventory item
type CreateItemRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Unit          string          `json:"unit" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// UpdateItemRequest represents a request to update an item's details. The
// quantity is deliberately absent: stock moves through invoices, purchases
// and explicit adjustments only.
type UpdateItemRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Unit          string          `json:"unit" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
}

// AdjustQuantityRequest represents a manual stock correction
type AdjustQuantityRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// ItemListFilter represents filter options for the item list
type ItemListFilter struct {
	Search   string `form:"search"`
	Unit     string `form:"unit"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ItemResponse represents an inventory item in responses
type ItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	StoreID       uuid.UUID       `json:"store_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	StockValue    decimal.Decimal `json:"stock_value"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(item *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		StoreID:       item.StoreID,
		Name:          item.Name,
		Unit:          item.Unit.String(),
		PurchasePrice: item.PurchasePrice,
		SellingPrice:  item.SellingPrice,
		Quantity:      item.Quantity,
		StockValue:    item.StockValue(),
		Version:       item.Version,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}
