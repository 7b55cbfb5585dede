package crew

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/crew"
	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
)

// CrewService handles crew, member and project-assignment operations
type CrewService struct {
	crewRepo        crew.CrewRepository
	memberRepo      crew.CrewMemberRepository
	projectCrewRepo crew.ProjectCrewRepository
	projectRepo     project.ProjectRepository
}

// NewCrewService creates a new CrewService
func NewCrewService(
	crewRepo crew.CrewRepository,
	memberRepo crew.CrewMemberRepository,
	projectCrewRepo crew.ProjectCrewRepository,
	projectRepo project.ProjectRepository,
) *CrewService {
	return &CrewService{
		crewRepo:        crewRepo,
		memberRepo:      memberRepo,
		projectCrewRepo: projectCrewRepo,
		projectRepo:     projectRepo,
	}
}

// Create creates a new crew
func (s *CrewService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCrewRequest) (*CrewResponse, error) {
	c, err := crew.NewCrew(tenantID, req.Name, req.Specialty)
	if err != nil {
		return nil, err
	}
	c.ForemanID = req.ForemanID
	c.Notes = req.Notes

	if err := s.crewRepo.Create(ctx, tenantID, c); err != nil {
		return nil, err
	}

	response := ToCrewResponse(c)
	return &response, nil
}

// GetByID retrieves a crew by ID
func (s *CrewService) GetByID(ctx context.Context, tenantID, crewID uuid.UUID) (*CrewResponse, error) {
	c, err := s.crewRepo.FindByIDForTenant(ctx, tenantID, crewID)
	if err != nil {
		return nil, err
	}

	response := ToCrewResponse(c)
	return &response, nil
}

// List retrieves crews with filtering and pagination
func (s *CrewService) List(ctx context.Context, tenantID uuid.UUID, filter CrewListFilter) ([]CrewResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}
	if filter.Search != "" {
		domainFilter.Or = shared.SearchFilter(filter.Search, "name", "specialty").Or
	}

	crews, err := s.crewRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.crewRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCrewResponses(crews), total, nil
}

// Update updates a crew
func (s *CrewService) Update(ctx context.Context, tenantID, crewID uuid.UUID, req UpdateCrewRequest) (*CrewResponse, error) {
	c, err := s.crewRepo.FindByIDForTenant(ctx, tenantID, crewID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Specialty != nil {
		name := c.Name
		specialty := c.Specialty
		if req.Name != nil {
			name = *req.Name
		}
		if req.Specialty != nil {
			specialty = *req.Specialty
		}
		if err := c.Update(name, specialty); err != nil {
			return nil, err
		}
	}
	if req.ForemanID != nil {
		c.ForemanID = req.ForemanID
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}

	if err := s.crewRepo.Update(ctx, tenantID, c); err != nil {
		return nil, err
	}

	response := ToCrewResponse(c)
	return &response, nil
}

// Deactivate marks a crew inactive, preserving its history
func (s *CrewService) Deactivate(ctx context.Context, tenantID, crewID uuid.UUID) (*CrewResponse, error) {
	c, err := s.crewRepo.FindByIDForTenant(ctx, tenantID, crewID)
	if err != nil {
		return nil, err
	}

	c.Deactivate()

	if err := s.crewRepo.Update(ctx, tenantID, c); err != nil {
		return nil, err
	}

	response := ToCrewResponse(c)
	return &response, nil
}

// Delete removes a crew
func (s *CrewService) Delete(ctx context.Context, tenantID, crewID uuid.UUID) error {
	return s.crewRepo.DeleteForTenant(ctx, tenantID, crewID)
}

// AddMember adds a worker to a crew
func (s *CrewService) AddMember(ctx context.Context, tenantID, crewID uuid.UUID, req CreateMemberRequest) (*MemberResponse, error) {
	if _, err := s.crewRepo.FindByIDForTenant(ctx, tenantID, crewID); err != nil {
		return nil, err
	}

	m, err := crew.NewCrewMember(tenantID, crewID, req.Name, req.Role)
	if err != nil {
		return nil, err
	}
	m.Phone = req.Phone
	m.Email = req.Email

	if err := s.memberRepo.Create(ctx, tenantID, m); err != nil {
		return nil, err
	}

	response := ToMemberResponse(m)
	return &response, nil
}

// ListMembers lists members of a crew
func (s *CrewService) ListMembers(ctx context.Context, tenantID, crewID uuid.UUID) ([]MemberResponse, error) {
	if _, err := s.crewRepo.FindByIDForTenant(ctx, tenantID, crewID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.FindByCrew(ctx, tenantID, crewID)
	if err != nil {
		return nil, err
	}

	return ToMemberResponses(members), nil
}

// UpdateMember updates a crew member
func (s *CrewService) UpdateMember(ctx context.Context, tenantID, memberID uuid.UUID, req UpdateMemberRequest) (*MemberResponse, error) {
	m, err := s.memberRepo.FindByIDForTenant(ctx, tenantID, memberID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Role != nil {
		m.Role = *req.Role
	}
	if req.Phone != nil {
		m.Phone = *req.Phone
	}
	if req.Email != nil {
		m.Email = *req.Email
	}

	if err := s.memberRepo.Update(ctx, tenantID, m); err != nil {
		return nil, err
	}

	response := ToMemberResponse(m)
	return &response, nil
}

// RemoveMember removes a worker from a crew
func (s *CrewService) RemoveMember(ctx context.Context, tenantID, memberID uuid.UUID) error {
	return s.memberRepo.DeleteForTenant(ctx, tenantID, memberID)
}

// AssignToProject links a crew to a project. Both must belong to the business.
func (s *CrewService) AssignToProject(ctx context.Context, tenantID, projectID uuid.UUID, req AssignCrewRequest) (*ProjectCrewResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	c, err := s.crewRepo.FindByIDForTenant(ctx, tenantID, req.CrewID)
	if err != nil {
		return nil, err
	}

	// Refuse double assignment of the same crew
	existing, err := s.projectCrewRepo.FindByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].CrewID == req.CrewID {
			return nil, shared.ErrAlreadyExists
		}
	}

	pc, err := crew.NewProjectCrew(tenantID, projectID, req.CrewID)
	if err != nil {
		return nil, err
	}
	pc.StartDate = req.StartDate
	pc.EndDate = req.EndDate

	if err := s.projectCrewRepo.Create(ctx, tenantID, pc); err != nil {
		return nil, err
	}

	response := ToProjectCrewResponse(pc)
	response.CrewName = c.Name
	return &response, nil
}

// ListProjectCrews lists crew assignments of a project with crew names resolved
func (s *CrewService) ListProjectCrews(ctx context.Context, tenantID, projectID uuid.UUID) ([]ProjectCrewResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	assignments, err := s.projectCrewRepo.FindByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(assignments))
	for i := range assignments {
		ids = append(ids, assignments[i].CrewID)
	}
	crews, err := s.crewRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(crews))
	for i := range crews {
		names[crews[i].ID] = crews[i].Name
	}

	responses := make([]ProjectCrewResponse, len(assignments))
	for i := range assignments {
		responses[i] = ToProjectCrewResponse(&assignments[i])
		responses[i].CrewName = names[assignments[i].CrewID]
	}
	return responses, nil
}

// UnassignFromProject removes a crew assignment
func (s *CrewService) UnassignFromProject(ctx context.Context, tenantID, assignmentID uuid.UUID) error {
	return s.projectCrewRepo.DeleteForTenant(ctx, tenantID, assignmentID)
}
