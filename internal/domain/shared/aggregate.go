package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// StoreAggregateRoot extends BaseAggregateRoot with store (tenant) scoping and
// a tombstone flag. Every scoped entity is owned by exactly one store; queries
// must always filter on both StoreID and IsActive.
type StoreAggregateRoot struct {
	BaseAggregateRoot
	StoreID  uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive bool      `gorm:"not null;default:true;index"`
}

// NewStoreAggregateRoot creates a new store-scoped aggregate root
func NewStoreAggregateRoot(storeID uuid.UUID) StoreAggregateRoot {
	return StoreAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		IsActive:          true,
		StoreID:           storeID,
	}
}

// Deactivate marks the aggregate as soft-deleted. Records are never removed
// from primary storage so historical references stay resolvable.
func (s *StoreAggregateRoot) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate restores a soft-deleted aggregate
func (s *StoreAggregateRoot) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
