package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/inventory"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemRepository is a mock implementation of inventory.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDsForStore(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]inventory.Item, error) {
	args := m.Called(ctx, storeID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) ExistsByName(ctx context.Context, storeID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, storeID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) SaveWithLock(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func (m *MockItemRepository) AdjustQuantity(ctx context.Context, storeID, itemID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, storeID, itemID, delta)
	return args.Error(0)
}

func (m *MockItemRepository) BulkAdjustQuantities(ctx context.Context, storeID uuid.UUID, adjustments []inventory.Adjustment) error {
	args := m.Called(ctx, storeID, adjustments)
	return args.Error(0)
}

func TestItemServiceCreate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("creates item", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewItemService(repo)

		repo.On("ExistsByName", ctx, storeID, "Engine Oil 1L").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil)

		resp, err := svc.Create(ctx, storeID, CreateItemRequest{
			Name:          "Engine Oil 1L",
			Unit:          "Piece",
			PurchasePrice: decimal.NewFromInt(20),
			SellingPrice:  decimal.NewFromInt(40),
			Quantity:      decimal.NewFromInt(10),
		})

		require.NoError(t, err)
		assert.Equal(t, "Engine Oil 1L", resp.Name)
		assert.True(t, resp.StockValue.Equal(decimal.NewFromInt(200)))
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewItemService(repo)

		repo.On("ExistsByName", ctx, storeID, "Engine Oil 1L").Return(true, nil)

		_, err := svc.Create(ctx, storeID, CreateItemRequest{
			Name: "Engine Oil 1L",
			Unit: "Piece",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown unit is rejected", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewItemService(repo)

		repo.On("ExistsByName", ctx, storeID, "Engine Oil 1L").Return(false, nil)

		_, err := svc.Create(ctx, storeID, CreateItemRequest{
			Name: "Engine Oil 1L",
			Unit: "Bucket",
		})
		assert.Error(t, err)
	})
}

func TestItemServiceUpdate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("quantity survives a details update", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewItemService(repo)

		item, err := inventory.NewInventoryItem(storeID, "Engine Oil 1L", inventory.UnitPiece,
			decimal.NewFromInt(20), decimal.NewFromInt(40), decimal.NewFromInt(7))
		require.NoError(t, err)

		repo.On("FindByIDForStore", ctx, storeID, item.ID).Return(item, nil)
		repo.On("ExistsByName", ctx, storeID, "Engine Oil 1L Synthetic").Return(false, nil)
		repo.On("SaveWithLock", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil)

		resp, err := svc.Update(ctx, storeID, item.ID, UpdateItemRequest{
			Name:          "Engine Oil 1L Synthetic",
			Unit:          "Piece",
			PurchasePrice: decimal.NewFromInt(25),
			SellingPrice:  decimal.NewFromInt(50),
		})

		require.NoError(t, err)
		assert.Equal(t, "Engine Oil 1L Synthetic", resp.Name)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(7)))
	})

	t.Run("rename onto an existing name is rejected", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewItemService(repo)

		item, err := inventory.NewInventoryItem(storeID, "Engine Oil 1L", inventory.UnitPiece,
			decimal.NewFromInt(20), decimal.NewFromInt(40), decimal.Zero)
		require.NoError(t, err)

		repo.On("FindByIDForStore", ctx, storeID, item.ID).Return(item, nil)
		repo.On("ExistsByName", ctx, storeID, "Brake Pad").Return(true, nil)

		_, err = svc.Update(ctx, storeID, item.ID, UpdateItemRequest{
			Name: "Brake Pad",
			Unit: "Piece",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestItemServiceAdjustQuantity(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	repo := new(MockItemRepository)
	svc := NewItemService(repo)

	item, err := inventory.NewInventoryItem(storeID, "Engine Oil 1L", inventory.UnitPiece,
		decimal.NewFromInt(20), decimal.NewFromInt(40), decimal.NewFromInt(7))
	require.NoError(t, err)

	repo.On("FindByIDForStore", ctx, storeID, item.ID).Return(item, nil)
	repo.On("AdjustQuantity", ctx, storeID, item.ID, decimal.NewFromInt(-2)).Return(nil)

	_, err = svc.AdjustQuantity(ctx, storeID, item.ID, AdjustQuantityRequest{Delta: decimal.NewFromInt(-2)})
	require.NoError(t, err)
	repo.AssertCalled(t, "AdjustQuantity", ctx, storeID, item.ID, decimal.NewFromInt(-2))
}
