package equipment

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/crew"
	"github.com/jobsight/backend/internal/domain/equipment"
	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
)

// Shown when an assignment references a crew or project that has since
// been deleted.
const (
	unknownCrewName    = "Unknown Crew"
	unknownProjectName = "Unknown Project"
)

// EquipmentService handles equipment inventory operations
type EquipmentService struct {
	equipmentRepo     equipment.EquipmentRepository
	specificationRepo equipment.SpecificationRepository
}

// NewEquipmentService creates a new EquipmentService
func NewEquipmentService(
	equipmentRepo equipment.EquipmentRepository,
	specificationRepo equipment.SpecificationRepository,
) *EquipmentService {
	return &EquipmentService{
		equipmentRepo:     equipmentRepo,
		specificationRepo: specificationRepo,
	}
}

// Create registers a new equipment item
func (s *EquipmentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateEquipmentRequest) (*EquipmentResponse, error) {
	e, err := equipment.NewEquipment(tenantID, req.Name, req.Category)
	if err != nil {
		return nil, err
	}

	e.SerialNumber = req.SerialNumber
	e.PurchasedAt = req.PurchasedAt
	e.Notes = req.Notes
	if req.PurchaseCost != nil || req.HourlyRate != nil {
		cost := e.PurchaseCost
		rate := e.HourlyRate
		if req.PurchaseCost != nil {
			cost = *req.PurchaseCost
		}
		if req.HourlyRate != nil {
			rate = *req.HourlyRate
		}
		if err := e.SetRates(cost, rate); err != nil {
			return nil, err
		}
	}

	if err := s.equipmentRepo.Create(ctx, tenantID, e); err != nil {
		return nil, err
	}

	response := ToEquipmentResponse(e)
	return &response, nil
}

// GetByID retrieves an equipment item by ID
func (s *EquipmentService) GetByID(ctx context.Context, tenantID, equipmentID uuid.UUID) (*EquipmentResponse, error) {
	e, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}

	response := ToEquipmentResponse(e)
	return &response, nil
}

// List retrieves equipment with filtering and pagination
func (s *EquipmentService) List(ctx context.Context, tenantID uuid.UUID, filter EquipmentListFilter) ([]EquipmentResponse, int64, error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Search != "" {
		domainFilter.Or = shared.SearchFilter(filter.Search, "name", "category", "serial_number").Or
	}

	items, err := s.equipmentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.equipmentRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToEquipmentResponses(items), total, nil
}

// Update updates an equipment item
func (s *EquipmentService) Update(ctx context.Context, tenantID, equipmentID uuid.UUID, req UpdateEquipmentRequest) (*EquipmentResponse, error) {
	e, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Category != nil || req.SerialNumber != nil {
		name := e.Name
		category := e.Category
		serial := e.SerialNumber
		if req.Name != nil {
			name = *req.Name
		}
		if req.Category != nil {
			category = *req.Category
		}
		if req.SerialNumber != nil {
			serial = *req.SerialNumber
		}
		if err := e.Update(name, category, serial); err != nil {
			return nil, err
		}
	}
	if req.PurchaseCost != nil || req.HourlyRate != nil {
		cost := e.PurchaseCost
		rate := e.HourlyRate
		if req.PurchaseCost != nil {
			cost = *req.PurchaseCost
		}
		if req.HourlyRate != nil {
			rate = *req.HourlyRate
		}
		if err := e.SetRates(cost, rate); err != nil {
			return nil, err
		}
	}
	if req.PurchasedAt != nil {
		e.PurchasedAt = req.PurchasedAt
	}
	if req.Notes != nil {
		e.Notes = *req.Notes
	}

	if err := s.equipmentRepo.Update(ctx, tenantID, e); err != nil {
		return nil, err
	}

	response := ToEquipmentResponse(e)
	return &response, nil
}

// Transition changes an equipment item's status following the lifecycle rules
func (s *EquipmentService) Transition(ctx context.Context, tenantID, equipmentID uuid.UUID, req TransitionEquipmentRequest) (*EquipmentResponse, error) {
	e, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}

	if err := e.Transition(equipment.EquipmentStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.equipmentRepo.Update(ctx, tenantID, e); err != nil {
		return nil, err
	}

	response := ToEquipmentResponse(e)
	return &response, nil
}

// Delete removes an equipment item
func (s *EquipmentService) Delete(ctx context.Context, tenantID, equipmentID uuid.UUID) error {
	return s.equipmentRepo.DeleteForTenant(ctx, tenantID, equipmentID)
}

// AddSpecification records a technical attribute of an equipment item
func (s *EquipmentService) AddSpecification(ctx context.Context, tenantID, equipmentID uuid.UUID, req SpecificationRequest) (*SpecificationResponse, error) {
	if _, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID); err != nil {
		return nil, err
	}

	spec, err := equipment.NewSpecification(tenantID, equipmentID, req.Label, req.Value)
	if err != nil {
		return nil, err
	}

	if err := s.specificationRepo.Create(ctx, tenantID, spec); err != nil {
		return nil, err
	}

	response := ToSpecificationResponse(spec)
	return &response, nil
}

// ListSpecifications lists the specifications of one equipment item
func (s *EquipmentService) ListSpecifications(ctx context.Context, tenantID, equipmentID uuid.UUID) ([]SpecificationResponse, error) {
	if _, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID); err != nil {
		return nil, err
	}

	specs, err := s.specificationRepo.FindByEquipment(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}
	return ToSpecificationResponses(specs), nil
}

// UpdateSpecification changes a specification's label and value
func (s *EquipmentService) UpdateSpecification(ctx context.Context, tenantID, specID uuid.UUID, req SpecificationRequest) (*SpecificationResponse, error) {
	spec, err := s.specificationRepo.FindByIDForTenant(ctx, tenantID, specID)
	if err != nil {
		return nil, err
	}

	if err := spec.Update(req.Label, req.Value); err != nil {
		return nil, err
	}
	if err := s.specificationRepo.Update(ctx, tenantID, spec); err != nil {
		return nil, err
	}

	response := ToSpecificationResponse(spec)
	return &response, nil
}

// RemoveSpecification deletes a specification from an equipment item
func (s *EquipmentService) RemoveSpecification(ctx context.Context, tenantID, specID uuid.UUID) error {
	return s.specificationRepo.DeleteForTenant(ctx, tenantID, specID)
}

// AssignmentService handles lending equipment to crews and projects
type AssignmentService struct {
	equipmentRepo   equipment.EquipmentRepository
	assignmentRepo  equipment.AssignmentRepository
	maintenanceRepo equipment.MaintenanceRepository
	crewRepo        crew.CrewRepository
	projectRepo     project.ProjectRepository
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	equipmentRepo equipment.EquipmentRepository,
	assignmentRepo equipment.AssignmentRepository,
	maintenanceRepo equipment.MaintenanceRepository,
	crewRepo crew.CrewRepository,
	projectRepo project.ProjectRepository,
) *AssignmentService {
	return &AssignmentService{
		equipmentRepo:   equipmentRepo,
		assignmentRepo:  assignmentRepo,
		maintenanceRepo: maintenanceRepo,
		crewRepo:        crewRepo,
		projectRepo:     projectRepo,
	}
}

// Assign lends an equipment item to a crew and/or project and flips the
// item's status to assigned.
func (s *AssignmentService) Assign(ctx context.Context, tenantID, equipmentID uuid.UUID, req CreateAssignmentRequest) (*AssignmentResponse, error) {
	e, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}
	if e.Status != equipment.EquipmentStatusAvailable {
		return nil, shared.NewDomainError("NOT_AVAILABLE", "Equipment is not available for assignment")
	}

	if req.CrewID != nil {
		if _, err := s.crewRepo.FindByIDForTenant(ctx, tenantID, *req.CrewID); err != nil {
			return nil, err
		}
	}

	a, err := equipment.NewAssignment(tenantID, equipmentID, req.CrewID, req.ProjectID)
	if err != nil {
		return nil, err
	}
	a.Notes = req.Notes

	if err := s.assignmentRepo.Create(ctx, tenantID, a); err != nil {
		return nil, err
	}

	if err := e.Transition(equipment.EquipmentStatusAssigned); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Update(ctx, tenantID, e); err != nil {
		return nil, err
	}

	responses := []AssignmentResponse{ToAssignmentResponse(a)}
	s.resolveNames(ctx, tenantID, responses)
	return &responses[0], nil
}

// Return closes an open assignment and makes the equipment available again
func (s *AssignmentService) Return(ctx context.Context, tenantID, assignmentID uuid.UUID) (*AssignmentResponse, error) {
	a, err := s.assignmentRepo.FindByIDForTenant(ctx, tenantID, assignmentID)
	if err != nil {
		return nil, err
	}

	if err := a.Return(); err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Update(ctx, tenantID, a); err != nil {
		return nil, err
	}

	e, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, a.EquipmentID)
	if err == nil && e.Status == equipment.EquipmentStatusAssigned {
		if err := e.Transition(equipment.EquipmentStatusAvailable); err == nil {
			if err := s.equipmentRepo.Update(ctx, tenantID, e); err != nil {
				return nil, err
			}
		}
	}

	responses := []AssignmentResponse{ToAssignmentResponse(a)}
	s.resolveNames(ctx, tenantID, responses)
	return &responses[0], nil
}

// History lists assignments of one equipment item, newest first, with crew
// names resolved
func (s *AssignmentService) History(ctx context.Context, tenantID, equipmentID uuid.UUID) ([]AssignmentResponse, error) {
	if _, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.FindByEquipment(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = ToAssignmentResponse(&assignments[i])
	}
	s.resolveNames(ctx, tenantID, responses)
	return responses, nil
}

// ListOpen lists all assignments still out across the business
func (s *AssignmentService) ListOpen(ctx context.Context, tenantID uuid.UUID, filter AssignmentListFilter) ([]AssignmentResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	assignments, err := s.assignmentRepo.FindOpen(ctx, tenantID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]any),
	})
	if err != nil {
		return nil, err
	}

	responses := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		responses[i] = ToAssignmentResponse(&assignments[i])
	}
	s.resolveNames(ctx, tenantID, responses)
	return responses, nil
}

// resolveNames fills CrewName and ProjectName on each response. Assignments
// pointing at a crew or project that no longer exists read as "Unknown Crew"
// / "Unknown Project" rather than failing the whole listing.
func (s *AssignmentService) resolveNames(ctx context.Context, tenantID uuid.UUID, responses []AssignmentResponse) {
	crewIDs := collectIDs(responses, func(r *AssignmentResponse) *uuid.UUID { return r.CrewID })
	if len(crewIDs) > 0 {
		names := make(map[uuid.UUID]string, len(crewIDs))
		crews, err := s.crewRepo.FindByIDs(ctx, tenantID, crewIDs)
		if err == nil {
			for i := range crews {
				names[crews[i].ID] = crews[i].Name
			}
		}
		for i := range responses {
			if responses[i].CrewID == nil {
				continue
			}
			if name, ok := names[*responses[i].CrewID]; ok {
				responses[i].CrewName = name
			} else {
				responses[i].CrewName = unknownCrewName
			}
		}
	}

	projectIDs := collectIDs(responses, func(r *AssignmentResponse) *uuid.UUID { return r.ProjectID })
	if len(projectIDs) > 0 {
		names := make(map[uuid.UUID]string, len(projectIDs))
		projects, err := s.projectRepo.FindByIDs(ctx, tenantID, projectIDs)
		if err == nil {
			for i := range projects {
				names[projects[i].ID] = projects[i].Name
			}
		}
		for i := range responses {
			if responses[i].ProjectID == nil {
				continue
			}
			if name, ok := names[*responses[i].ProjectID]; ok {
				responses[i].ProjectName = name
			} else {
				responses[i].ProjectName = unknownProjectName
			}
		}
	}
}

func collectIDs(responses []AssignmentResponse, pick func(*AssignmentResponse) *uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(responses))
	seen := make(map[uuid.UUID]bool)
	for i := range responses {
		if id := pick(&responses[i]); id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	return ids
}

// LogMaintenance records service work on an equipment item
func (s *AssignmentService) LogMaintenance(ctx context.Context, tenantID, equipmentID uuid.UUID, req CreateMaintenanceRequest) (*MaintenanceResponse, error) {
	if _, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID); err != nil {
		return nil, err
	}

	m, err := equipment.NewMaintenanceRecord(tenantID, equipmentID, req.Description, req.PerformedAt)
	if err != nil {
		return nil, err
	}
	m.CostCents = req.CostCents

	if err := s.maintenanceRepo.Create(ctx, tenantID, m); err != nil {
		return nil, err
	}

	response := ToMaintenanceResponse(m)
	return &response, nil
}

// MaintenanceHistory lists maintenance records of one equipment item
func (s *AssignmentService) MaintenanceHistory(ctx context.Context, tenantID, equipmentID uuid.UUID) ([]MaintenanceResponse, error) {
	if _, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, equipmentID); err != nil {
		return nil, err
	}

	records, err := s.maintenanceRepo.FindByEquipment(ctx, tenantID, equipmentID)
	if err != nil {
		return nil, err
	}

	return ToMaintenanceResponses(records), nil
}
