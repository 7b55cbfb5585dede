package shared

import (
	"context"

	"github.com/google/uuid"
)

// TenantRepository is the uniform persistence surface for business-owned
// aggregates. Every operation carries the owning business ID explicitly;
// implementations must guarantee that no row belonging to another business
// is ever returned, modified or removed, regardless of the filter supplied.
type TenantRepository[T any] interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]T, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) (int64, error)
	Create(ctx context.Context, tenantID uuid.UUID, entity *T) error
	Update(ctx context.Context, tenantID uuid.UUID, entity *T) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// FilterOp is a comparison operator usable in a Filter clause.
type FilterOp string

const (
	FilterOpEq    FilterOp = "eq"
	FilterOpILike FilterOp = "ilike"
	FilterOpIn    FilterOp = "in"
)

// FilterClause is a single column predicate.
type FilterClause struct {
	Column string
	Op     FilterOp
	Value  any
}

// Filter represents query filter options. Or clauses are combined with
// logical OR among themselves and AND-ed with everything else; the tenant
// predicate is always applied on top and cannot be overridden here.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Filters  map[string]any
	Or       []FilterClause
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
}

// SearchFilter builds a filter matching term case-insensitively against any
// of the given text columns. The term is wrapped in wildcards here so that
// callers pass plain text.
func SearchFilter(term string, columns ...string) Filter {
	f := DefaultFilter()
	pattern := "%" + term + "%"
	for _, col := range columns {
		f.Or = append(f.Or, FilterClause{Column: col, Op: FilterOpILike, Value: pattern})
	}
	return f
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
