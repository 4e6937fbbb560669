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

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByIDForStore finds an active supplier by ID within a store
func (r *GormSupplierRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ? AND is_active = ?", storeID, id, true).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAllForStore finds active suppliers for a store with filtering
func (r *GormSupplierRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	query := r.applyFilter(r.scopedQuery(ctx, storeID), filter)
	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// CountForStore counts active suppliers matching the filter
func (r *GormSupplierRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.scopedQuery(ctx, storeID), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPhone checks for an active supplier with the given phone, optionally
// excluding one supplier
func (r *GormSupplierRepository) ExistsByPhone(ctx context.Context, storeID uuid.UUID, phone string, excludeID *uuid.UUID) (bool, error) {
	query := r.scopedQuery(ctx, storeID).Where("phone = ?", strings.TrimSpace(phone))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// SoftDeleteForStore clears the active flag on a supplier
func (r *GormSupplierRepository) SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
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

func (r *GormSupplierRepository) scopedQuery(ctx context.Context, storeID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
		Where("store_id = ? AND is_active = ?", storeID, true)
}

func (r *GormSupplierRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

func (r *GormSupplierRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
