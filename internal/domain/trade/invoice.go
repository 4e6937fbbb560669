package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/shared"
)

// LineItem represents one product or service entry on an invoice. It is a
// child entity of Invoice, never addressed independently.
//
// Name, Unit and SellingPrice are snapshots taken when the line was written.
// Later price edits on the inventory item must not rewrite history.
type LineItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	// ItemID is nil for custom service lines, which never touch inventory.
	ItemID          *uuid.UUID      `gorm:"type:uuid;index"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SellingPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Discount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsCustomService bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "invoice_line_items"
}

// NewLineItem creates a new invoice line. itemID must be set unless the line
// is a custom service entry.
func NewLineItem(invoiceID uuid.UUID, itemID *uuid.UUID, name, unit string, quantity, sellingPrice, discount decimal.Decimal, isCustomService bool) (*LineItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_LINE_NAME", "Line item name cannot be empty")
	}
	if !isCustomService && (itemID == nil || *itemID == uuid.Nil) {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM", "Line item must reference an inventory item or be marked as a custom service")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Line discount cannot be negative")
	}

	gross := sellingPrice.Mul(quantity)
	if discount.GreaterThan(gross) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Line discount cannot exceed the line amount")
	}

	now := time.Now()
	line := &LineItem{
		ID:              uuid.New(),
		InvoiceID:       invoiceID,
		Name:            strings.TrimSpace(name),
		Unit:            unit,
		Quantity:        quantity,
		SellingPrice:    sellingPrice,
		Discount:        discount,
		Amount:          gross.Sub(discount),
		IsCustomService: isCustomService,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !isCustomService {
		line.ItemID = itemID
	}
	return line, nil
}

// StockDelta is the quantity an invoice or purchase moved for one inventory
// item. Sign conventions belong to the caller: invoices consume, purchases
// restock.
type StockDelta struct {
	ItemID   uuid.UUID
	Quantity decimal.Decimal
}

// Invoice is the aggregate root for a sale. Monetary totals and the payment
// status are derived, recomputed on every mutation and never trusted from
// callers.
type Invoice struct {
	shared.StoreAggregateRoot
	InvoiceNumber string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_store_number,priority:2"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerName  string     `gorm:"type:varchar(200);not null"`
	InvoiceDate   time.Time  `gorm:"not null;index"`
	VehicleNumber string     `gorm:"type:varchar(50)"`
	Items         []LineItem `gorm:"foreignKey:InvoiceID;references:ID"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CustomerPaid  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	// DueAmount may be negative when the customer overpaid; the surplus is
	// treated as store credit rather than rejected.
	DueAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null;default:'Unpaid'"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null;default:'Cash'"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new invoice. The invoice number is caller-supplied;
// per-store uniqueness is enforced at persistence.
func NewInvoice(storeID uuid.UUID, invoiceNumber string, customerID uuid.UUID, customerName string, invoiceDate time.Time) (*Invoice, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	return &Invoice{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		InvoiceNumber:      invoiceNumber,
		CustomerID:         customerID,
		CustomerName:       customerName,
		InvoiceDate:        invoiceDate,
		Items:              make([]LineItem, 0),
		TotalAmount:        decimal.Zero,
		Discount:           decimal.Zero,
		CustomerPaid:       decimal.Zero,
		DueAmount:          decimal.Zero,
		Status:             PaymentStatusUnpaid,
		PaymentMethod:      PaymentMethodCash,
	}, nil
}

// AddLine appends a line item and recomputes totals
func (inv *Invoice) AddLine(itemID *uuid.UUID, name, unit string, quantity, sellingPrice, discount decimal.Decimal, isCustomService bool) (*LineItem, error) {
	line, err := NewLineItem(inv.ID, itemID, name, unit, quantity, sellingPrice, discount, isCustomService)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *line)
	inv.recalculate()
	inv.UpdatedAt = time.Now()
	return line, nil
}

// ReplaceLines swaps out all line items and recomputes totals. An invoice
// must always carry at least one line.
func (inv *Invoice) ReplaceLines(lines []LineItem) error {
	if len(lines) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Invoice must have at least one line item")
	}
	for i := range lines {
		lines[i].InvoiceID = inv.ID
	}
	inv.Items = lines
	inv.recalculate()
	inv.UpdatedAt = time.Now()
	return nil
}

// ApplyDiscount sets the invoice-level absolute discount
func (inv *Invoice) ApplyDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(inv.grossAmount()) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the invoice amount")
	}

	inv.Discount = discount
	inv.recalculate()
	inv.UpdatedAt = time.Now()
	return nil
}

// RecordPayment sets the amount the customer has paid and the method used.
// Overpayment is accepted; the due amount goes negative and the status
// derives to Paid.
func (inv *Invoice) RecordPayment(customerPaid decimal.Decimal, method PaymentMethod) error {
	if customerPaid.IsNegative() {
		return shared.NewDomainError("INVALID_PAYMENT", "Paid amount cannot be negative")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	inv.CustomerPaid = customerPaid
	inv.PaymentMethod = method
	inv.recalculate()
	inv.UpdatedAt = time.Now()
	return nil
}

// SetCustomer updates the customer reference and name snapshot
func (inv *Invoice) SetCustomer(customerID uuid.UUID, customerName string) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	inv.CustomerID = customerID
	inv.CustomerName = customerName
	inv.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the free-text notes
func (inv *Invoice) SetNotes(notes string) {
	inv.Notes = notes
	inv.UpdatedAt = time.Now()
}

// SetVehicleNumber sets the optional vehicle number
func (inv *Invoice) SetVehicleNumber(vehicleNumber string) {
	inv.VehicleNumber = vehicleNumber
	inv.UpdatedAt = time.Now()
}

// SetInvoiceDate sets the invoice date
func (inv *Invoice) SetInvoiceDate(date time.Time) {
	if !date.IsZero() {
		inv.InvoiceDate = date
		inv.UpdatedAt = time.Now()
	}
}

// StockDeltas returns the quantity each referenced inventory item contributed
// to this invoice, merged per item. Custom service lines are skipped.
func (inv *Invoice) StockDeltas() []StockDelta {
	return mergeStockDeltas(inv.Items)
}

// IsSettled returns true when the invoice is fully paid
func (inv *Invoice) IsSettled() bool {
	return inv.Status == PaymentStatusPaid
}

// IsOutstanding returns true when any amount is still due
func (inv *Invoice) IsOutstanding() bool {
	return inv.Status == PaymentStatusUnpaid || inv.Status == PaymentStatusPartiallyPaid
}

// grossAmount is the line total before the invoice-level discount
func (inv *Invoice) grossAmount() decimal.Decimal {
	gross := decimal.Zero
	for _, line := range inv.Items {
		gross = gross.Add(line.Amount)
	}
	return gross
}

// recalculate re-derives total, due and status. Invariants:
// TotalAmount == sum(line amounts) - Discount and
// DueAmount == TotalAmount - CustomerPaid.
func (inv *Invoice) recalculate() {
	inv.TotalAmount = inv.grossAmount().Sub(inv.Discount)
	inv.DueAmount = inv.TotalAmount.Sub(inv.CustomerPaid)
	inv.Status = DerivePaymentStatus(inv.CustomerPaid, inv.TotalAmount)
}

// mergeStockDeltas folds line quantities into one positive delta per
// referenced item
func mergeStockDeltas(lines []LineItem) []StockDelta {
	merged := make(map[uuid.UUID]decimal.Decimal)
	order := make([]uuid.UUID, 0)
	for _, line := range lines {
		if line.IsCustomService || line.ItemID == nil {
			continue
		}
		if _, seen := merged[*line.ItemID]; !seen {
			order = append(order, *line.ItemID)
		}
		merged[*line.ItemID] = merged[*line.ItemID].Add(line.Quantity)
	}

	deltas := make([]StockDelta, 0, len(order))
	for _, id := range order {
		deltas = append(deltas, StockDelta{ItemID: id, Quantity: merged[id]})
	}
	return deltas
}
