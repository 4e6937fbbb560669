package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/inventory"
	"github.com/storebooks/backend/internal/domain/shared"
)

// ItemService handles inventory item business operations
type ItemService struct {
	itemRepo inventory.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo inventory.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// Create creates an inventory item. Item names are unique per store,
// case-insensitively.
func (s *ItemService) Create(ctx context.Context, storeID uuid.UUID, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.itemRepo.ExistsByName(ctx, storeID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("An item named %q already exists in this store", req.Name))
	}

	item, err := inventory.NewInventoryItem(storeID, req.Name, inventory.Unit(req.Unit),
		req.PurchasePrice, req.SellingPrice, req.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Update changes an item's details, leaving the quantity alone
func (s *ItemService) Update(ctx context.Context, storeID, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForStore(ctx, storeID, itemID)
	if err != nil {
		return nil, err
	}

	if item.Name != req.Name {
		exists, err := s.itemRepo.ExistsByName(ctx, storeID, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("An item named %q already exists in this store", req.Name))
		}
	}

	if err := item.UpdateDetails(req.Name, inventory.Unit(req.Unit), req.PurchasePrice, req.SellingPrice); err != nil {
		return nil, err
	}
	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// AdjustQuantity applies a manual signed stock correction atomically
func (s *ItemService) AdjustQuantity(ctx context.Context, storeID, itemID uuid.UUID, req AdjustQuantityRequest) (*ItemResponse, error) {
	if _, err := s.itemRepo.FindByIDForStore(ctx, storeID, itemID); err != nil {
		return nil, err
	}
	if err := s.itemRepo.AdjustQuantity(ctx, storeID, itemID, req.Delta); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindByIDForStore(ctx, storeID, itemID)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// Delete soft-deletes an item. Invoice and purchase lines keep their
// snapshots, so history is unaffected.
func (s *ItemService) Delete(ctx context.Context, storeID, itemID uuid.UUID) error {
	if _, err := s.itemRepo.FindByIDForStore(ctx, storeID, itemID); err != nil {
		return err
	}
	return s.itemRepo.SoftDeleteForStore(ctx, storeID, itemID)
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, storeID, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByIDForStore(ctx, storeID, itemID)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with filtering and pagination
func (s *ItemService) List(ctx context.Context, storeID uuid.UUID, filter ItemListFilter) ([]ItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Unit != "" {
		domainFilter.Filters["unit"] = filter.Unit
	}

	items, err := s.itemRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses, total, nil
}
