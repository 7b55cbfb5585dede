package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/persistence/tenant"
)

// ScopedRepository is a generic GORM repository for business-owned
// aggregates. Every read carries a tenant_id predicate and every write is
// checked for ownership, so a record belonging to another business is
// indistinguishable from one that does not exist.
//
// columns is the allowlist used for both ordering and filter keys; anything
// not in it is silently replaced by the default order or dropped.
type ScopedRepository[T any] struct {
	db           *gorm.DB
	columns      map[string]bool
	defaultOrder string
}

// NewScopedRepository creates a scoped repository for T
func NewScopedRepository[T any](db *gorm.DB, columns map[string]bool, defaultOrder string) *ScopedRepository[T] {
	if defaultOrder == "" {
		defaultOrder = "created_at DESC"
	}
	merged := make(map[string]bool, len(columns)+len(CommonSortFields))
	for k := range CommonSortFields {
		merged[k] = true
	}
	for k, v := range columns {
		merged[k] = v
	}
	return &ScopedRepository[T]{db: db, columns: merged, defaultOrder: defaultOrder}
}

// DB exposes the underlying handle for repository-specific queries
func (r *ScopedRepository[T]) DB() *gorm.DB {
	return r.db
}

// FindByIDForTenant loads a single record owned by the business
func (r *ScopedRepository[T]) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAllForTenant lists records owned by the business matching the filter
func (r *ScopedRepository[T]) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	var model T
	query := r.db.WithContext(ctx).Model(&model).Scopes(tenant.Scope(tenantID))
	query = r.applyConditions(query, filter)
	query = r.applyOrderAndPage(query, filter)

	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// CountForTenant counts records owned by the business matching the filter
func (r *ScopedRepository[T]) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	var model T
	query := r.db.WithContext(ctx).Model(&model).Scopes(tenant.Scope(tenantID))
	query = r.applyConditions(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a record for the business. The owning business ID is
// stamped here from the resolved tenant, never taken from the payload, and
// audit metadata is stamped from the request's authenticated actor.
func (r *ScopedRepository[T]) Create(ctx context.Context, tenantID uuid.UUID, entity *T) error {
	if tenantID == uuid.Nil {
		return shared.ErrTenantRequired
	}
	owned, ok := any(entity).(shared.TenantOwned)
	if !ok {
		return fmt.Errorf("entity %T is not tenant owned", entity)
	}
	owned.SetTenantID(tenantID)
	if stamper, ok := any(entity).(shared.AuditStamper); ok {
		stamper.StampCreated(shared.ActorFromContext(ctx))
	}
	return r.db.WithContext(ctx).Create(entity).Error
}

// Update persists changes to a record the business owns. A mismatched or
// unknown id updates nothing and reports shared.ErrNotFound.
func (r *ScopedRepository[T]) Update(ctx context.Context, tenantID uuid.UUID, entity *T) error {
	ent, ok := any(entity).(shared.Entity)
	if !ok {
		return fmt.Errorf("entity %T has no identity", entity)
	}
	if owned, ok := any(entity).(shared.TenantOwned); ok {
		owned.SetTenantID(tenantID)
	}
	if stamper, ok := any(entity).(shared.AuditStamper); ok {
		stamper.StampUpdated(shared.ActorFromContext(ctx))
	}

	result := r.db.WithContext(ctx).
		Model(entity).
		Where("tenant_id = ? AND id = ?", tenantID, ent.GetID()).
		Select("*").
		Omit("id", "tenant_id", "created_at", "created_by").
		Updates(entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForTenant removes a record the business owns. A mismatched or
// unknown id deletes nothing and reports shared.ErrNotFound.
func (r *ScopedRepository[T]) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	var model T
	result := r.db.WithContext(ctx).Delete(&model, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyConditions applies the filter map and OR clauses. Unknown columns
// are dropped so that the filter surface cannot be used for SQL injection
// or for reaching columns outside the allowlist.
func (r *ScopedRepository[T]) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		if !r.columns[key] {
			continue
		}
		switch value.(type) {
		case []string, []any, []uuid.UUID:
			query = query.Where(key+" IN ?", value)
		default:
			query = query.Where(key+" = ?", value)
		}
	}

	if len(filter.Or) > 0 {
		parts := make([]string, 0, len(filter.Or))
		args := make([]any, 0, len(filter.Or))
		for _, c := range filter.Or {
			if !r.columns[c.Column] {
				continue
			}
			switch c.Op {
			case shared.FilterOpILike:
				parts = append(parts, c.Column+" ILIKE ?")
				args = append(args, c.Value)
			case shared.FilterOpIn:
				parts = append(parts, c.Column+" IN ?")
				args = append(args, c.Value)
			default:
				parts = append(parts, c.Column+" = ?")
				args = append(args, c.Value)
			}
		}
		if len(parts) > 0 {
			query = query.Where(strings.Join(parts, " OR "), args...)
		}
	}

	return query
}

// applyOrderAndPage applies validated ordering and pagination
func (r *ScopedRepository[T]) applyOrderAndPage(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" && r.columns[filter.OrderBy] {
		query = query.Order(filter.OrderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order(r.defaultOrder)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
