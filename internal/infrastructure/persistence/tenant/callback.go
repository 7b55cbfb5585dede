package tenant

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jobsight/backend/internal/infrastructure/logger"
)

// Callback registers GORM hooks that force the business predicate onto
// query, update and delete statements. It is a safety net behind the
// repositories: even a hand-written query cannot reach another business's
// rows while the context carries a tenant ID.
type Callback struct {
	tenantColumn string
	required     bool
}

// NewCallback creates a callback handler for the given column
func NewCallback(tenantColumn string, required bool) *Callback {
	if tenantColumn == "" {
		tenantColumn = "tenant_id"
	}
	return &Callback{tenantColumn: tenantColumn, required: required}
}

// Register installs the hooks on the GORM instance.
// Create is deliberately not hooked: the owning business ID is stamped
// explicitly by the repository so that a payload-supplied value can never
// win.
func (tc *Callback) Register(db *gorm.DB) {
	_ = db.Callback().Query().Before("gorm:query").Register("tenant:before_query", tc.before)
	_ = db.Callback().Update().Before("gorm:update").Register("tenant:before_update", tc.before)
	_ = db.Callback().Delete().Before("gorm:delete").Register("tenant:before_delete", tc.before)
	_ = db.Callback().Row().Before("gorm:row").Register("tenant:before_row", tc.before)
}

// Remove uninstalls the hooks. Mainly for tests.
func (tc *Callback) Remove(db *gorm.DB) {
	_ = db.Callback().Query().Remove("tenant:before_query")
	_ = db.Callback().Update().Remove("tenant:before_update")
	_ = db.Callback().Delete().Remove("tenant:before_delete")
	_ = db.Callback().Row().Remove("tenant:before_row")
}

func (tc *Callback) before(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}
	if db.Statement.Unscoped {
		return
	}
	// Global tables (businesses, users) carry no tenant column
	if !tc.modelHasTenantColumn(db) {
		return
	}
	if tc.hasTenantCondition(db) {
		return
	}

	tenantID := logger.GetTenantID(db.Statement.Context)
	if tenantID == "" {
		if tc.required {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return
	}
	if _, err := uuid.Parse(tenantID); err != nil {
		_ = db.AddError(ErrInvalidTenantID)
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: clause.CurrentTable, Name: tc.tenantColumn},
				Value:  tenantID,
			},
		},
	})
}

func (tc *Callback) modelHasTenantColumn(db *gorm.DB) bool {
	if db.Statement.Schema == nil {
		return false
	}
	return db.Statement.Schema.LookUpField(tc.tenantColumn) != nil
}

func (tc *Callback) hasTenantCondition(db *gorm.DB) bool {
	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if tc.exprContainsTenant(expr) {
					return true
				}
			}
		}
	}

	sql := db.Statement.SQL.String()
	return sql != "" && strings.Contains(sql, tc.tenantColumn)
}

func (tc *Callback) exprContainsTenant(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == tc.tenantColumn
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == tc.tenantColumn
		}
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if tc.exprContainsTenant(cond) {
				return true
			}
		}
	case clause.OrConditions:
		for _, cond := range e.Exprs {
			if tc.exprContainsTenant(cond) {
				return true
			}
		}
	case clause.Expr:
		return strings.Contains(e.SQL, tc.tenantColumn)
	case clause.NamedExpr:
		return strings.Contains(e.SQL, tc.tenantColumn)
	}
	return false
}

// EnableAutoTenantFilter installs the default tenant hooks on db
func EnableAutoTenantFilter(db *gorm.DB, required bool) {
	NewCallback("tenant_id", required).Register(db)
}
