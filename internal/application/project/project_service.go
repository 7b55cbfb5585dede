package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/directory"
	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/events"
)

// ProjectService handles project-related business operations
type ProjectService struct {
	projectRepo project.ProjectRepository
	clientRepo  directory.ClientRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo project.ProjectRepository, clientRepo directory.ClientRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
	}
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProjectRequest) (*ProjectResponse, error) {
	p, err := project.NewProject(tenantID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ClientID != nil {
		// The client must belong to this business
		if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
		if err := p.AssignClient(*req.ClientID); err != nil {
			return nil, err
		}
	}
	if req.Description != "" {
		if err := p.Update(p.Name, req.Description); err != nil {
			return nil, err
		}
	}
	p.Address = req.Address
	p.City = req.City
	p.State = req.State
	if req.Budget != nil {
		if err := p.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}
	if req.StartDate != nil || req.EndDate != nil {
		if err := p.SetSchedule(req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.Create(ctx, tenantID, p); err != nil {
		return nil, err
	}
	events.Publish(ctx, p)

	response := ToProjectResponse(p)
	return &response, nil
}

// GetByID retrieves a project by ID
func (s *ProjectService) GetByID(ctx context.Context, tenantID, projectID uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	response := ToProjectResponse(p)
	return &response, nil
}

// List retrieves projects with filtering and pagination
func (s *ProjectService) List(ctx context.Context, tenantID uuid.UUID, filter ProjectListFilter) ([]ProjectResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.ClientID != "" {
		domainFilter.Filters["client_id"] = filter.ClientID
	}
	if filter.Search != "" {
		domainFilter.Or = shared.SearchFilter(filter.Search, "name", "city").Or
	}

	projects, err := s.projectRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.projectRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProjectResponses(projects), total, nil
}

// Update updates a project
func (s *ProjectService) Update(ctx context.Context, tenantID, projectID uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := p.Name
		description := p.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := p.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
		if err := p.AssignClient(*req.ClientID); err != nil {
			return nil, err
		}
	}

	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.Budget != nil {
		if err := p.SetBudget(*req.Budget); err != nil {
			return nil, err
		}
	}
	if req.StartDate != nil || req.EndDate != nil {
		start := p.StartDate
		end := p.EndDate
		if req.StartDate != nil {
			start = req.StartDate
		}
		if req.EndDate != nil {
			end = req.EndDate
		}
		if err := p.SetSchedule(start, end); err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.Update(ctx, tenantID, p); err != nil {
		return nil, err
	}

	response := ToProjectResponse(p)
	return &response, nil
}

// Transition changes a project's status following the lifecycle rules
func (s *ProjectService) Transition(ctx context.Context, tenantID, projectID uuid.UUID, req TransitionProjectRequest) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if err := p.Transition(project.ProjectStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, tenantID, p); err != nil {
		return nil, err
	}

	response := ToProjectResponse(p)
	return &response, nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, tenantID, projectID uuid.UUID) error {
	return s.projectRepo.DeleteForTenant(ctx, tenantID, projectID)
}
