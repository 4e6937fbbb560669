package store

import (
	"strings"
	"time"

	"github.com/storebooks/backend/internal/domain/shared"
)

// Store represents a branch/tenant boundary. Every other aggregate in the
// system is owned by exactly one store and is always queried through it.
type Store struct {
	shared.BaseAggregateRoot
	Code     string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(200);not null"`
	IsActive bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store with required fields
func NewStore(code, name string) (*Store, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot exceed 200 characters")
	}

	return &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(strings.TrimSpace(code)),
		Name:              strings.TrimSpace(name),
		IsActive:          true,
	}, nil
}

// Rename updates the display name
func (s *Store) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	s.Name = strings.TrimSpace(name)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Deactivate marks the store inactive. Scoped data stays untouched but the
// store stops resolving for new requests.
func (s *Store) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate restores a deactivated store
func (s *Store) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

func validateCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_STORE_CODE", "Store code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_STORE_CODE", "Store code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			return shared.NewDomainError("INVALID_STORE_CODE", "Store code may only contain letters, digits, '-' and '_'")
		}
	}
	return nil
}
