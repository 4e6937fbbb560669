package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
)

// Supplier represents a goods supplier, scoped to one store. Purchases
// reference suppliers the way invoices reference customers.
type Supplier struct {
	shared.StoreAggregateRoot
	Name        string `gorm:"type:varchar(200);not null;index"`
	CompanyName string `gorm:"type:varchar(200)"`
	Phone       string `gorm:"type:varchar(20);not null;index"`
	Email       string `gorm:"type:varchar(200)"`
	Address     string `gorm:"type:text"`
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(storeID uuid.UUID, name, phone string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot exceed 200 characters")
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	return &Supplier{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               name,
		Phone:              strings.TrimSpace(phone),
	}, nil
}

// Update replaces the supplier's editable fields
func (s *Supplier) Update(name, companyName, phone, email, address, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	s.Name = name
	s.CompanyName = strings.TrimSpace(companyName)
	s.Phone = strings.TrimSpace(phone)
	s.Email = strings.TrimSpace(email)
	s.Address = address
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
