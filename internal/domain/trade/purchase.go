package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/shared"
)

// PurchaseLine represents one entry on a supplier purchase. Snapshots follow
// the same rules as invoice lines.
type PurchaseLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID        *uuid.UUID      `gorm:"type:uuid;index"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Unit          string          `gorm:"type:varchar(20);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (PurchaseLine) TableName() string {
	return "purchase_lines"
}

// NewPurchaseLine creates a purchase line. itemID may be nil for expense-only
// entries that never touch inventory.
func NewPurchaseLine(purchaseID uuid.UUID, itemID *uuid.UUID, name, unit string, quantity, purchasePrice decimal.Decimal) (*PurchaseLine, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_LINE_NAME", "Purchase line name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}

	now := time.Now()
	line := &PurchaseLine{
		ID:            uuid.New(),
		PurchaseID:    purchaseID,
		Name:          strings.TrimSpace(name),
		Unit:          unit,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		Amount:        purchasePrice.Mul(quantity),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if itemID != nil && *itemID != uuid.Nil {
		line.ItemID = itemID
	}
	return line, nil
}

// Purchase is the aggregate root for a supplier purchase. It mirrors Invoice:
// totals and payment status are derived, and reconciliation restocks
// inventory instead of consuming it.
type Purchase struct {
	shared.StoreAggregateRoot
	PurchaseNumber string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchases_store_number,priority:2"`
	SupplierID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	SupplierName   string         `gorm:"type:varchar(200);not null"`
	PurchaseDate   time.Time      `gorm:"not null;index"`
	Items          []PurchaseLine `gorm:"foreignKey:PurchaseID;references:ID"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DueAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status         PaymentStatus   `gorm:"type:varchar(20);not null;default:'Unpaid'"`
	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null;default:'Cash'"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase
func NewPurchase(storeID uuid.UUID, purchaseNumber string, supplierID uuid.UUID, supplierName string, purchaseDate time.Time) (*Purchase, error) {
	purchaseNumber = strings.TrimSpace(purchaseNumber)
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot be empty")
	}
	if len(purchaseNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	return &Purchase{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		PurchaseNumber:     purchaseNumber,
		SupplierID:         supplierID,
		SupplierName:       supplierName,
		PurchaseDate:       purchaseDate,
		Items:              make([]PurchaseLine, 0),
		TotalAmount:        decimal.Zero,
		AmountPaid:         decimal.Zero,
		DueAmount:          decimal.Zero,
		Status:             PaymentStatusUnpaid,
		PaymentMethod:      PaymentMethodCash,
	}, nil
}

// AddLine appends a purchase line and recomputes totals
func (p *Purchase) AddLine(itemID *uuid.UUID, name, unit string, quantity, purchasePrice decimal.Decimal) (*PurchaseLine, error) {
	line, err := NewPurchaseLine(p.ID, itemID, name, unit, quantity, purchasePrice)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *line)
	p.recalculate()
	p.UpdatedAt = time.Now()
	return line, nil
}

// ReplaceLines swaps out all purchase lines and recomputes totals
func (p *Purchase) ReplaceLines(lines []PurchaseLine) error {
	if len(lines) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Purchase must have at least one line item")
	}
	for i := range lines {
		lines[i].PurchaseID = p.ID
	}
	p.Items = lines
	p.recalculate()
	p.UpdatedAt = time.Now()
	return nil
}

// RecordPayment sets the amount paid to the supplier and the method used
func (p *Purchase) RecordPayment(amountPaid decimal.Decimal, method PaymentMethod) error {
	if amountPaid.IsNegative() {
		return shared.NewDomainError("INVALID_PAYMENT", "Paid amount cannot be negative")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	p.AmountPaid = amountPaid
	p.PaymentMethod = method
	p.recalculate()
	p.UpdatedAt = time.Now()
	return nil
}

// SetSupplier updates the supplier reference and name snapshot
func (p *Purchase) SetSupplier(supplierID uuid.UUID, supplierName string) error {
	if supplierID == uuid.Nil {
		return shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	p.SupplierID = supplierID
	p.SupplierName = supplierName
	p.UpdatedAt = time.Now()
	return nil
}

// SetPurchaseDate sets the purchase date
func (p *Purchase) SetPurchaseDate(date time.Time) {
	if !date.IsZero() {
		p.PurchaseDate = date
		p.UpdatedAt = time.Now()
	}
}

// SetNotes sets the free-text notes
func (p *Purchase) SetNotes(notes string) {
	p.Notes = notes
	p.UpdatedAt = time.Now()
}

// StockDeltas returns the quantity each referenced item was restocked with,
// merged per item
func (p *Purchase) StockDeltas() []StockDelta {
	merged := make(map[uuid.UUID]decimal.Decimal)
	order := make([]uuid.UUID, 0)
	for _, line := range p.Items {
		if line.ItemID == nil {
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

// recalculate re-derives total, due and status
func (p *Purchase) recalculate() {
	total := decimal.Zero
	for _, line := range p.Items {
		total = total.Add(line.Amount)
	}
	p.TotalAmount = total
	p.DueAmount = p.TotalAmount.Sub(p.AmountPaid)
	p.Status = DerivePaymentStatus(p.AmountPaid, p.TotalAmount)
}
