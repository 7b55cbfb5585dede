// Package tenant provides business-scoped database access for GORM.
//
// Every row of business-owned data carries a tenant_id column holding the
// owning business ID. This package forces a WHERE tenant_id = ? predicate
// onto queries so that a record belonging to another business behaves
// exactly like a record that does not exist.
//
// Usage:
//
//	db := tenant.NewTenantDB(gormDB)
//	scoped := db.WithContext(ctx) // tenant filter applied automatically
//	scoped.Find(&projects)
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/infrastructure/logger"
)

// ErrTenantIDRequired is returned when no business ID is available for a
// scoped operation
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// ErrInvalidTenantID is returned when the business ID is not a valid UUID
var ErrInvalidTenantID = errors.New("invalid tenant_id format")

// Scope applies the business filter to a GORM query
func Scope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// ScopeString applies the business filter using a string ID
func ScopeString(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// TenantDB wraps a GORM DB with automatic business scoping
type TenantDB struct {
	db       *gorm.DB
	required bool
}

// NewTenantDB creates a TenantDB that requires a business ID for every
// scoped operation
func NewTenantDB(db *gorm.DB) *TenantDB {
	return &TenantDB{db: db, required: true}
}

// DB returns the underlying GORM DB without scoping.
// Bypasses isolation; reserved for system-level operations.
func (t *TenantDB) DB() *gorm.DB {
	return t.db
}

// WithContext returns a GORM DB scoped to the business resolved into the
// context by the tenant middleware. If no business ID is present the
// returned DB errors on any operation rather than running unscoped.
func (t *TenantDB) WithContext(ctx context.Context) *gorm.DB {
	tenantID := logger.GetTenantID(ctx)

	if tenantID == "" {
		db := t.db.WithContext(ctx)
		if t.required {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return db
	}

	if _, err := uuid.Parse(tenantID); err != nil {
		db := t.db.WithContext(ctx)
		_ = db.AddError(ErrInvalidTenantID)
		return db
	}

	return t.db.WithContext(ctx).Scopes(ScopeString(tenantID))
}

// WithTenant returns a GORM DB scoped to an explicit business ID
func (t *TenantDB) WithTenant(tenantID uuid.UUID) *gorm.DB {
	if tenantID == uuid.Nil {
		db := t.db
		if t.required {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return db
	}
	return t.db.Scopes(Scope(tenantID))
}

// ForTenant returns a GORM DB carrying both the context and an explicit
// business scope
func (t *TenantDB) ForTenant(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return t.db.WithContext(ctx).Scopes(Scope(tenantID))
}

// Transaction runs fn inside a database transaction with the business
// scope from context applied
func (t *TenantDB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tenantID := logger.GetTenantID(ctx)

	if tenantID == "" && t.required {
		return ErrTenantIDRequired
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tenantID != "" {
			tx = tx.Scopes(ScopeString(tenantID))
		}
		return fn(tx)
	})
}

// Unscoped returns the raw DB without any business scoping.
// Only for migrations and system-level maintenance.
func (t *TenantDB) Unscoped() *gorm.DB {
	return t.db
}
