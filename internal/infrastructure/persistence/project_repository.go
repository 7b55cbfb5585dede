package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	*ScopedRepository[project.Project]
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{
		ScopedRepository: NewScopedRepository[project.Project](db, ProjectSortFields, "created_at DESC"),
	}
}

// Search matches name or city case-insensitively
func (r *GormProjectRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]project.Project, error) {
	return r.FindAllForTenant(ctx, tenantID, shared.SearchFilter(term, "name", "city"))
}

// FindByIDs bulk-loads projects for denormalization lookups
func (r *GormProjectRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]project.Project, error) {
	if len(ids) == 0 {
		return []project.Project{}, nil
	}
	var projects []project.Project
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// FindByClient lists projects for one client
func (r *GormProjectRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["client_id"] = clientID
	return r.FindAllForTenant(ctx, tenantID, filter)
}

// FindByStatus lists projects in the given status
func (r *GormProjectRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status project.ProjectStatus, filter shared.Filter) ([]project.Project, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["status"] = status
	return r.FindAllForTenant(ctx, tenantID, filter)
}

var _ project.ProjectRepository = (*GormProjectRepository)(nil)

// GormMilestoneRepository implements MilestoneRepository using GORM
type GormMilestoneRepository struct {
	*ScopedRepository[project.Milestone]
}

// NewGormMilestoneRepository creates a new GormMilestoneRepository
func NewGormMilestoneRepository(db *gorm.DB) *GormMilestoneRepository {
	return &GormMilestoneRepository{
		ScopedRepository: NewScopedRepository[project.Milestone](db, MilestoneSortFields, "due_date ASC"),
	}
}

// FindByProject lists milestones of one project, soonest due first
func (r *GormMilestoneRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]project.Milestone, error) {
	var milestones []project.Milestone
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("due_date ASC").
		Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}

var _ project.MilestoneRepository = (*GormMilestoneRepository)(nil)

// GormIssueRepository implements IssueRepository using GORM
type GormIssueRepository struct {
	*ScopedRepository[project.Issue]
}

// NewGormIssueRepository creates a new GormIssueRepository
func NewGormIssueRepository(db *gorm.DB) *GormIssueRepository {
	return &GormIssueRepository{
		ScopedRepository: NewScopedRepository[project.Issue](db, IssueSortFields, "created_at DESC"),
	}
}

// FindByProject lists issues of one project, newest first
func (r *GormIssueRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]project.Issue, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["project_id"] = projectID
	return r.FindAllForTenant(ctx, tenantID, filter)
}

// FindOpen lists open issues across all projects of the business
func (r *GormIssueRepository) FindOpen(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]project.Issue, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["status"] = project.IssueStatusOpen
	return r.FindAllForTenant(ctx, tenantID, filter)
}

var _ project.IssueRepository = (*GormIssueRepository)(nil)
