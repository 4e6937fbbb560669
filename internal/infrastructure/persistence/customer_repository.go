package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/partner"
	"github.com/storebooks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCustomerRepository implements partner.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByIDForStore finds an active customer by ID within a store
func (r *GormCustomerRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ? AND is_active = ?", storeID, id, true).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAllForStore finds active customers for a store with filtering
func (r *GormCustomerRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	var customers []partner.Customer
	query := r.applyFilter(r.scopedQuery(ctx, storeID), filter)
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// CountForStore counts active customers matching the filter
func (r *GormCustomerRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.scopedQuery(ctx, storeID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPhone checks for an active customer with the given phone, optionally
// excluding one customer (used when updating)
func (r *GormCustomerRepository) ExistsByPhone(ctx context.Context, storeID uuid.UUID, phone string, excludeID *uuid.UUID) (bool, error) {
	query := r.scopedQuery(ctx, storeID).Where("phone = ?", strings.TrimSpace(phone))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// SoftDeleteForStore clears the active flag on a customer
func (r *GormCustomerRepository) SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Where("store_id = ? AND id = ? AND is_active = ?", storeID, id, true).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCustomerRepository) scopedQuery(ctx context.Context, storeID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Where("store_id = ? AND is_active = ?", storeID, true)
}

// applySearch matches any search token against the name, company name or phone
func (r *GormCustomerRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	tokens := shared.TokenizeSearch(filter.Search)
	if len(tokens) == 0 {
		return query
	}
	clauses := make([]string, 0, len(tokens)*3)
	args := make([]interface{}, 0, len(tokens)*3)
	for _, token := range tokens {
		pattern := "%" + strings.ToLower(token) + "%"
		clauses = append(clauses, "LOWER(name) LIKE ?", "LOWER(company_name) LIKE ?", "phone LIKE ?")
		args = append(args, pattern, pattern, "%"+token+"%")
	}
	return query.Where(strings.Join(clauses, " OR "), args...)
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PartnerSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if filter.OrderBy == "" && filter.OrderDir == "" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}
