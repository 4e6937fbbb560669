package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/inventory"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository is a mock implementation of trade.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*trade.Invoice, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]trade.Invoice, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) FindOutstandingByCustomer(ctx context.Context, storeID, customerID uuid.UUID) ([]trade.Invoice, *trade.OutstandingStats, error) {
	args := m.Called(ctx, storeID, customerID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]trade.Invoice), args.Get(1).(*trade.OutstandingStats), args.Error(2)
}

func (m *MockInvoiceRepository) ExistsByNumber(ctx context.Context, storeID uuid.UUID, invoiceNumber string) (bool, error) {
	args := m.Called(ctx, storeID, invoiceNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *trade.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *trade.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

// MockPurchaseRepository is a mock implementation of trade.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*trade.Purchase, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]trade.Purchase, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) ExistsByNumber(ctx context.Context, storeID uuid.UUID, purchaseNumber string) (bool, error) {
	args := m.Called(ctx, storeID, purchaseNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) SaveWithLock(ctx context.Context, purchase *trade.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

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
