package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/directory"
	"github.com/jobsight/backend/internal/domain/shared"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	*ScopedRepository[directory.Client]
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{
		ScopedRepository: NewScopedRepository[directory.Client](db, ClientSortFields, "name ASC"),
	}
}

// Search matches name, company name or email case-insensitively
func (r *GormClientRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]directory.Client, error) {
	return r.FindAllForTenant(ctx, tenantID, shared.SearchFilter(term, "name", "company_name", "email"))
}

// FindByStatus lists clients in the given status
func (r *GormClientRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status directory.ClientStatus, filter shared.Filter) ([]directory.Client, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["status"] = status
	return r.FindAllForTenant(ctx, tenantID, filter)
}

var _ directory.ClientRepository = (*GormClientRepository)(nil)

// GormClientContactRepository implements ClientContactRepository using GORM
type GormClientContactRepository struct {
	*ScopedRepository[directory.ClientContact]
}

// NewGormClientContactRepository creates a new GormClientContactRepository
func NewGormClientContactRepository(db *gorm.DB) *GormClientContactRepository {
	return &GormClientContactRepository{
		ScopedRepository: NewScopedRepository[directory.ClientContact](db,
			map[string]bool{"client_id": true, "name": true, "is_primary": true},
			"is_primary DESC, name ASC"),
	}
}

// FindByClient lists contacts of one client, primary first
func (r *GormClientContactRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]directory.ClientContact, error) {
	var contacts []directory.ClientContact
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Order("is_primary DESC, name ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

var _ directory.ClientContactRepository = (*GormClientContactRepository)(nil)

// GormClientInteractionRepository implements ClientInteractionRepository using GORM
type GormClientInteractionRepository struct {
	*ScopedRepository[directory.ClientInteraction]
}

// NewGormClientInteractionRepository creates a new GormClientInteractionRepository
func NewGormClientInteractionRepository(db *gorm.DB) *GormClientInteractionRepository {
	return &GormClientInteractionRepository{
		ScopedRepository: NewScopedRepository[directory.ClientInteraction](db,
			map[string]bool{"client_id": true, "kind": true, "occurred_at": true},
			"occurred_at DESC"),
	}
}

// FindByClient lists interactions of one client, newest first
func (r *GormClientInteractionRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]directory.ClientInteraction, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["client_id"] = clientID
	if filter.OrderBy == "" {
		filter.OrderBy = "occurred_at"
		filter.OrderDir = "desc"
	}
	return r.FindAllForTenant(ctx, tenantID, filter)
}

var _ directory.ClientInteractionRepository = (*GormClientInteractionRepository)(nil)
