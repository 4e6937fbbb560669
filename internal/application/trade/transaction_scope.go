package trade

import (
	"context"

	"github.com/storebooks/backend/internal/domain/inventory"
	"github.com/storebooks/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories touched
// by reconciliation. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the trade and inventory
// repositories within a transaction. All repositories returned share the same
// underlying database transaction, so an invoice write and its stock
// adjustments either both land or neither does.
type TransactionalRepositories interface {
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() trade.InvoiceRepository
	// PurchaseRepo returns the purchase repository scoped to the current transaction
	PurchaseRepo() trade.PurchaseRepository
	// ItemRepo returns the inventory item repository scoped to the current transaction
	ItemRepo() inventory.ItemRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	invoiceRepo  trade.InvoiceRepository
	purchaseRepo trade.PurchaseRepository
	itemRepo     inventory.ItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	invoiceRepo trade.InvoiceRepository,
	purchaseRepo trade.PurchaseRepository,
	itemRepo inventory.ItemRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
		itemRepo:     itemRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() trade.InvoiceRepository {
	return s.invoiceRepo
}

// PurchaseRepo returns the purchase repository.
func (s *NoOpTransactionScope) PurchaseRepo() trade.PurchaseRepository {
	return s.purchaseRepo
}

// ItemRepo returns the inventory item repository.
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository {
	return s.itemRepo
}
