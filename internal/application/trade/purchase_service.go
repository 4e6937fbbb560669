package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/inventory"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PurchaseService coordinates supplier purchases with inventory. It mirrors
// InvoiceService with the signs flipped: create restocks, update reverts the
// previous restock before applying the new one, delete removes the restock.
type PurchaseService struct {
	purchaseRepo trade.PurchaseRepository
	itemRepo     inventory.ItemRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo trade.PurchaseRepository,
	itemRepo inventory.ItemRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		itemRepo:     itemRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// Create creates a purchase and increments stock for its inventory-backed
// lines atomically
func (s *PurchaseService) Create(ctx context.Context, storeID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	exists, err := s.purchaseRepo.ExistsByNumber(ctx, storeID, req.PurchaseNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Purchase number %s already exists in this store", req.PurchaseNumber))
	}

	purchase, err := trade.NewPurchase(storeID, req.PurchaseNumber, req.SupplierID, req.SupplierName, req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, s.itemRepo, storeID, purchase.ID, req.Items)
	if err != nil {
		return nil, err
	}
	if err := purchase.ReplaceLines(lines); err != nil {
		return nil, err
	}
	if err := purchase.RecordPayment(req.AmountPaid, paymentMethod(req.PaymentMethod)); err != nil {
		return nil, err
	}
	purchase.SetNotes(req.Notes)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		deltas := restore(purchase.StockDeltas())
		if len(deltas) > 0 {
			if err := repos.ItemRepo().BulkAdjustQuantities(ctx, storeID, deltas); err != nil {
				return s.reconciliationFailed("purchase.create", purchase.PurchaseNumber, err)
			}
		}
		return repos.PurchaseRepo().Save(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Update replaces a purchase's content, reverting the stored restock and
// applying the new one in the same transaction as the purchase write
func (s *PurchaseService) Update(ctx context.Context, storeID, purchaseID uuid.UUID, req UpdatePurchaseRequest) (*PurchaseResponse, error) {
	var response PurchaseResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByIDForStore(ctx, storeID, purchaseID)
		if err != nil {
			return err
		}

		revert := consume(purchase.StockDeltas())

		lines, err := s.buildLines(ctx, repos.ItemRepo(), storeID, purchase.ID, req.Items)
		if err != nil {
			return err
		}
		if err := purchase.SetSupplier(req.SupplierID, req.SupplierName); err != nil {
			return err
		}
		purchase.SetPurchaseDate(req.PurchaseDate)
		if err := purchase.ReplaceLines(lines); err != nil {
			return err
		}
		if err := purchase.RecordPayment(req.AmountPaid, paymentMethod(req.PaymentMethod)); err != nil {
			return err
		}
		purchase.SetNotes(req.Notes)

		adjustments := append(revert, restore(purchase.StockDeltas())...)
		if len(adjustments) > 0 {
			if err := repos.ItemRepo().BulkAdjustQuantities(ctx, storeID, adjustments); err != nil {
				return s.reconciliationFailed("purchase.update", purchase.PurchaseNumber, err)
			}
		}
		if err := repos.PurchaseRepo().SaveWithLock(ctx, purchase); err != nil {
			return err
		}

		response = ToPurchaseResponse(purchase)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// RecordPayment updates the paid amount and method. Stock is untouched.
func (s *PurchaseService) RecordPayment(ctx context.Context, storeID, purchaseID uuid.UUID, req RecordPaymentRequest) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByIDForStore(ctx, storeID, purchaseID)
	if err != nil {
		return nil, err
	}
	if err := purchase.RecordPayment(req.AmountPaid, paymentMethod(req.PaymentMethod)); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveWithLock(ctx, purchase); err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// Delete soft-deletes a purchase and removes the stock it added, in one
// transaction
func (s *PurchaseService) Delete(ctx context.Context, storeID, purchaseID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		purchase, err := repos.PurchaseRepo().FindByIDForStore(ctx, storeID, purchaseID)
		if err != nil {
			return err
		}

		revert := consume(purchase.StockDeltas())
		if len(revert) > 0 {
			if err := repos.ItemRepo().BulkAdjustQuantities(ctx, storeID, revert); err != nil {
				return s.reconciliationFailed("purchase.delete", purchase.PurchaseNumber, err)
			}
		}
		return repos.PurchaseRepo().SoftDeleteForStore(ctx, storeID, purchaseID)
	})
}

// GetByID retrieves a purchase by ID
func (s *PurchaseService) GetByID(ctx context.Context, storeID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.FindByIDForStore(ctx, storeID, purchaseID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseResponse(purchase)
	return &response, nil
}

// List retrieves purchases with filtering and pagination
func (s *PurchaseService) List(ctx context.Context, storeID uuid.UUID, filter PurchaseListFilter) ([]PurchaseListItemResponse, int64, error) {
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
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	purchases, err := s.purchaseRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.purchaseRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PurchaseListItemResponse, len(purchases))
	for i := range purchases {
		responses[i] = ToPurchaseListItemResponse(&purchases[i])
	}
	return responses, total, nil
}

// buildLines resolves purchase line inputs into domain lines. Inventory-backed
// lines snapshot the item's name and unit; the purchase price comes from the
// item unless the request overrides it.
func (s *PurchaseService) buildLines(ctx context.Context, itemRepo inventory.ItemRepository, storeID, purchaseID uuid.UUID, inputs []PurchaseLineInput) ([]trade.PurchaseLine, error) {
	itemIDs := make([]uuid.UUID, 0, len(inputs))
	for _, input := range inputs {
		if input.ItemID != nil {
			itemIDs = append(itemIDs, *input.ItemID)
		}
	}

	itemsByID := make(map[uuid.UUID]inventory.Item)
	if len(itemIDs) > 0 {
		items, err := itemRepo.FindByIDsForStore(ctx, storeID, itemIDs)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			itemsByID[item.ID] = item
		}
	}

	lines := make([]trade.PurchaseLine, 0, len(inputs))
	for _, input := range inputs {
		var (
			name  = input.Name
			unit  = input.Unit
			price decimal.Decimal
		)
		if input.PurchasePrice != nil {
			price = *input.PurchasePrice
		}

		if input.ItemID != nil {
			item, ok := itemsByID[*input.ItemID]
			if !ok {
				return nil, shared.NewDomainError("NOT_FOUND",
					fmt.Sprintf("Inventory item %s not found in this store", *input.ItemID))
			}
			name = item.Name
			unit = item.Unit.String()
			if input.PurchasePrice == nil {
				price = item.PurchasePrice
			}
		}

		line, err := trade.NewPurchaseLine(purchaseID, input.ItemID, name, unit, input.Quantity, price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

func (s *PurchaseService) reconciliationFailed(operation, documentNumber string, err error) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	s.logger.Error("stock reconciliation failed",
		zap.String("operation", operation),
		zap.String("document_number", documentNumber),
		zap.Error(err),
	)
	return shared.NewReconciliationError("Inventory could not be adjusted together with the purchase")
}
