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

// InvoiceService coordinates invoices with inventory. Every operation that
// changes an invoice's lines adjusts the referenced items' stock in the same
// database transaction: create consumes stock, update reverts the previous
// effect before applying the new one, delete restores it.
type InvoiceService struct {
	invoiceRepo trade.InvoiceRepository
	itemRepo    inventory.ItemRepository
	txScope     TransactionScope
	logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo trade.InvoiceRepository,
	itemRepo inventory.ItemRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		itemRepo:    itemRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// Create creates an invoice and decrements stock for its inventory-backed
// lines atomically
func (s *InvoiceService) Create(ctx context.Context, storeID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	exists, err := s.invoiceRepo.ExistsByNumber(ctx, storeID, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("Invoice number %s already exists in this store", req.InvoiceNumber))
	}

	invoice, err := trade.NewInvoice(storeID, req.InvoiceNumber, req.CustomerID, req.CustomerName, req.InvoiceDate)
	if err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, s.itemRepo, storeID, invoice.ID, req.Items)
	if err != nil {
		return nil, err
	}
	if err := invoice.ReplaceLines(lines); err != nil {
		return nil, err
	}
	if err := invoice.ApplyDiscount(req.Discount); err != nil {
		return nil, err
	}
	if err := invoice.RecordPayment(req.CustomerPaid, paymentMethod(req.PaymentMethod)); err != nil {
		return nil, err
	}
	invoice.SetVehicleNumber(req.VehicleNumber)
	invoice.SetNotes(req.Notes)

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		deltas := consume(invoice.StockDeltas())
		if len(deltas) > 0 {
			if err := repos.ItemRepo().BulkAdjustQuantities(ctx, storeID, deltas); err != nil {
				return s.reconciliationFailed("invoice.create", invoice.InvoiceNumber, err)
			}
		}
		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Update replaces an invoice's content. The stock effect of the stored lines
// is reverted and the effect of the new lines applied, both in the same
// transaction as the invoice write, so an update from 3 to 5 units leaves the
// item exactly 5 units lower than before the invoice existed.
func (s *InvoiceService) Update(ctx context.Context, storeID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	var response InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForStore(ctx, storeID, invoiceID)
		if err != nil {
			return err
		}

		revert := restore(invoice.StockDeltas())

		lines, err := s.buildLines(ctx, repos.ItemRepo(), storeID, invoice.ID, req.Items)
		if err != nil {
			return err
		}
		if err := invoice.SetCustomer(req.CustomerID, req.CustomerName); err != nil {
			return err
		}
		invoice.SetInvoiceDate(req.InvoiceDate)
		invoice.SetVehicleNumber(req.VehicleNumber)
		if err := invoice.ReplaceLines(lines); err != nil {
			return err
		}
		if err := invoice.ApplyDiscount(req.Discount); err != nil {
			return err
		}
		if err := invoice.RecordPayment(req.CustomerPaid, paymentMethod(req.PaymentMethod)); err != nil {
			return err
		}
		invoice.SetNotes(req.Notes)

		adjustments := append(revert, consume(invoice.StockDeltas())...)
		if len(adjustments) > 0 {
			if err := repos.ItemRepo().BulkAdjustQuantities(ctx, storeID, adjustments); err != nil {
				return s.reconciliationFailed("invoice.update", invoice.InvoiceNumber, err)
			}
		}
		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		response = ToInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// RecordPayment updates the paid amount and method. Stock is untouched.
func (s *InvoiceService) RecordPayment(ctx context.Context, storeID, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForStore(ctx, storeID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := invoice.RecordPayment(req.AmountPaid, paymentMethod(req.PaymentMethod)); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete soft-deletes an invoice and restores the stock it consumed, in one
// transaction
func (s *InvoiceService) Delete(ctx context.Context, storeID, invoiceID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForStore(ctx, storeID, invoiceID)
		if err != nil {
			return err
		}

		revert := restore(invoice.StockDeltas())
		if len(revert) > 0 {
			if err := repos.ItemRepo().BulkAdjustQuantities(ctx, storeID, revert); err != nil {
				return s.reconciliationFailed("invoice.delete", invoice.InvoiceNumber, err)
			}
		}
		return repos.InvoiceRepo().SoftDeleteForStore(ctx, storeID, invoiceID)
	})
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, storeID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForStore(ctx, storeID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, storeID uuid.UUID, filter InvoiceListFilter) ([]InvoiceListItemResponse, int64, error) {
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
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
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

	invoices, err := s.invoiceRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceListItemResponse(&invoices[i])
	}
	return responses, total, nil
}

// GetOutstandingByCustomer returns a customer's unpaid and partially paid
// invoices with aggregate totals
func (s *InvoiceService) GetOutstandingByCustomer(ctx context.Context, storeID, customerID uuid.UUID) (*OutstandingResponse, error) {
	invoices, stats, err := s.invoiceRepo.FindOutstandingByCustomer(ctx, storeID, customerID)
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceListItemResponse(&invoices[i])
	}
	return &OutstandingResponse{
		Invoices:           items,
		TotalInvoiceAmount: stats.TotalInvoiceAmount,
		TotalDueAmount:     stats.TotalDueAmount,
		InvoiceCount:       stats.InvoiceCount,
	}, nil
}

// buildLines resolves line inputs into domain lines. Inventory-backed lines
// snapshot the item's name and unit; the selling price comes from the item
// unless the request overrides it.
func (s *InvoiceService) buildLines(ctx context.Context, itemRepo inventory.ItemRepository, storeID, invoiceID uuid.UUID, inputs []InvoiceLineInput) ([]trade.LineItem, error) {
	itemIDs := make([]uuid.UUID, 0, len(inputs))
	for _, input := range inputs {
		if !input.IsCustomService {
			if input.ItemID == nil {
				return nil, shared.NewDomainError("INVALID_LINE_ITEM", "Inventory line must reference an item")
			}
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

	lines := make([]trade.LineItem, 0, len(inputs))
	for _, input := range inputs {
		var (
			name  = input.Name
			unit  = input.Unit
			price decimal.Decimal
		)
		if input.SellingPrice != nil {
			price = *input.SellingPrice
		}

		if !input.IsCustomService {
			item, ok := itemsByID[*input.ItemID]
			if !ok {
				return nil, shared.NewDomainError("NOT_FOUND",
					fmt.Sprintf("Inventory item %s not found in this store", *input.ItemID))
			}
			name = item.Name
			unit = item.Unit.String()
			if input.SellingPrice == nil {
				price = item.SellingPrice
			}
		}

		line, err := trade.NewLineItem(invoiceID, input.ItemID, name, unit, input.Quantity, price, input.Discount, input.IsCustomService)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

// reconciliationFailed logs a failed paired write and converts storage errors
// into a reconciliation error. Domain errors pass through untouched.
func (s *InvoiceService) reconciliationFailed(operation, documentNumber string, err error) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	s.logger.Error("stock reconciliation failed",
		zap.String("operation", operation),
		zap.String("document_number", documentNumber),
		zap.Error(err),
	)
	return shared.NewReconciliationError("Inventory could not be adjusted together with the invoice")
}

// consume converts stock deltas into negative inventory adjustments
func consume(deltas []trade.StockDelta) []inventory.Adjustment {
	adjustments := make([]inventory.Adjustment, len(deltas))
	for i, d := range deltas {
		adjustments[i] = inventory.Adjustment{ItemID: d.ItemID, Delta: d.Quantity.Neg()}
	}
	return adjustments
}

// restore converts stock deltas into positive inventory adjustments
func restore(deltas []trade.StockDelta) []inventory.Adjustment {
	adjustments := make([]inventory.Adjustment, len(deltas))
	for i, d := range deltas {
		adjustments[i] = inventory.Adjustment{ItemID: d.ItemID, Delta: d.Quantity}
	}
	return adjustments
}

// paymentMethod maps a request string onto a domain payment method, defaulting
// to cash when absent. Validation happens in RecordPayment.
func paymentMethod(method string) trade.PaymentMethod {
	if method == "" {
		return trade.PaymentMethodCash
	}
	return trade.PaymentMethod(method)
}
