package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-() ]{6,20}$`)

// Customer represents a customer in the partner context, scoped to one store.
// Invoices reference customers and snapshot the name at write time.
type Customer struct {
	shared.StoreAggregateRoot
	Name        string `gorm:"type:varchar(200);not null;index"`
	CompanyName string `gorm:"type:varchar(200)"`
	Phone       string `gorm:"type:varchar(20);not null;index"`
	Email       string `gorm:"type:varchar(200)"`
	Address     string `gorm:"type:text"`
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(storeID uuid.UUID, name, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	return &Customer{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               name,
		Phone:              strings.TrimSpace(phone),
	}, nil
}

// Update replaces the customer's editable fields
func (c *Customer) Update(name, companyName, phone, email, address, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	c.Name = name
	c.CompanyName = strings.TrimSpace(companyName)
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.TrimSpace(email)
	c.Address = address
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

func validatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone number is required")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number format is invalid")
	}
	return nil
}
