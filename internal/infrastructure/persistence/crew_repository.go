package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/crew"
	"github.com/jobsight/backend/internal/domain/shared"
)

// GormCrewRepository implements CrewRepository using GORM
type GormCrewRepository struct {
	*ScopedRepository[crew.Crew]
}

// NewGormCrewRepository creates a new GormCrewRepository
func NewGormCrewRepository(db *gorm.DB) *GormCrewRepository {
	return &GormCrewRepository{
		ScopedRepository: NewScopedRepository[crew.Crew](db, CrewSortFields, "name ASC"),
	}
}

// Search matches crew name or specialty case-insensitively
func (r *GormCrewRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]crew.Crew, error) {
	return r.FindAllForTenant(ctx, tenantID, shared.SearchFilter(term, "name", "specialty"))
}

// FindByIDs bulk-loads crews for denormalization lookups
func (r *GormCrewRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]crew.Crew, error) {
	if len(ids) == 0 {
		return []crew.Crew{}, nil
	}
	var crews []crew.Crew
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&crews).Error; err != nil {
		return nil, err
	}
	return crews, nil
}

var _ crew.CrewRepository = (*GormCrewRepository)(nil)

// GormCrewMemberRepository implements CrewMemberRepository using GORM
type GormCrewMemberRepository struct {
	*ScopedRepository[crew.CrewMember]
}

// NewGormCrewMemberRepository creates a new GormCrewMemberRepository
func NewGormCrewMemberRepository(db *gorm.DB) *GormCrewMemberRepository {
	return &GormCrewMemberRepository{
		ScopedRepository: NewScopedRepository[crew.CrewMember](db, CrewMemberSortFields, "name ASC"),
	}
}

// FindByCrew lists members of one crew
func (r *GormCrewMemberRepository) FindByCrew(ctx context.Context, tenantID, crewID uuid.UUID) ([]crew.CrewMember, error) {
	var members []crew.CrewMember
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND crew_id = ?", tenantID, crewID).
		Order("name ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

var _ crew.CrewMemberRepository = (*GormCrewMemberRepository)(nil)

// GormProjectCrewRepository implements ProjectCrewRepository using GORM
type GormProjectCrewRepository struct {
	*ScopedRepository[crew.ProjectCrew]
}

// NewGormProjectCrewRepository creates a new GormProjectCrewRepository
func NewGormProjectCrewRepository(db *gorm.DB) *GormProjectCrewRepository {
	return &GormProjectCrewRepository{
		ScopedRepository: NewScopedRepository[crew.ProjectCrew](db, ProjectCrewSortFields, "assigned_at DESC"),
	}
}

// FindByProject lists crew assignments of one project
func (r *GormProjectCrewRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]crew.ProjectCrew, error) {
	var assignments []crew.ProjectCrew
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindByCrew lists project assignments of one crew
func (r *GormProjectCrewRepository) FindByCrew(ctx context.Context, tenantID, crewID uuid.UUID) ([]crew.ProjectCrew, error) {
	var assignments []crew.ProjectCrew
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND crew_id = ?", tenantID, crewID).
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

var _ crew.ProjectCrewRepository = (*GormProjectCrewRepository)(nil)
