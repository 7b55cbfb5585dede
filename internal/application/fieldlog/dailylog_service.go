package fieldlog

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/equipment"
	"github.com/jobsight/backend/internal/domain/fieldlog"
	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
)

// DailyLogService handles daily log reporting operations
type DailyLogService struct {
	logRepo       fieldlog.DailyLogRepository
	equipUseRepo  fieldlog.EquipmentUsageRepository
	matUseRepo    fieldlog.MaterialUsageRepository
	projectRepo   project.ProjectRepository
	equipmentRepo equipment.EquipmentRepository
}

// NewDailyLogService creates a new DailyLogService
func NewDailyLogService(
	logRepo fieldlog.DailyLogRepository,
	equipUseRepo fieldlog.EquipmentUsageRepository,
	matUseRepo fieldlog.MaterialUsageRepository,
	projectRepo project.ProjectRepository,
	equipmentRepo equipment.EquipmentRepository,
) *DailyLogService {
	return &DailyLogService{
		logRepo:       logRepo,
		equipUseRepo:  equipUseRepo,
		matUseRepo:    matUseRepo,
		projectRepo:   projectRepo,
		equipmentRepo: equipmentRepo,
	}
}

// Create files a daily log for a project
func (s *DailyLogService) Create(ctx context.Context, tenantID, projectID uuid.UUID, req CreateDailyLogRequest) (*DailyLogResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	d, err := fieldlog.NewDailyLog(tenantID, projectID, req.LogDate, req.WorkSummary)
	if err != nil {
		return nil, err
	}
	if err := d.Update(req.Weather, req.WorkSummary, req.Headcount, req.HoursWorked); err != nil {
		return nil, err
	}

	if err := s.logRepo.Create(ctx, tenantID, d); err != nil {
		return nil, err
	}

	response := ToDailyLogResponse(d)
	return &response, nil
}

// Get retrieves a daily log with its equipment and material rows
func (s *DailyLogService) Get(ctx context.Context, tenantID, logID uuid.UUID) (*DailyLogDetailResponse, error) {
	d, err := s.logRepo.FindByIDForTenant(ctx, tenantID, logID)
	if err != nil {
		return nil, err
	}

	equipRows, err := s.equipUseRepo.FindByDailyLog(ctx, tenantID, logID)
	if err != nil {
		return nil, err
	}
	matRows, err := s.matUseRepo.FindByDailyLog(ctx, tenantID, logID)
	if err != nil {
		return nil, err
	}

	detail := &DailyLogDetailResponse{
		DailyLogResponse: ToDailyLogResponse(d),
		Equipment:        make([]EquipmentUsageResponse, len(equipRows)),
		Materials:        make([]MaterialUsageResponse, len(matRows)),
	}
	for i := range equipRows {
		detail.Equipment[i] = ToEquipmentUsageResponse(&equipRows[i])
	}
	for i := range matRows {
		detail.Materials[i] = ToMaterialUsageResponse(&matRows[i])
	}
	return detail, nil
}

// ListByProject lists daily logs of a project, newest date first
func (s *DailyLogService) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter DailyLogListFilter) ([]DailyLogResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	logs, err := s.logRepo.FindByProject(ctx, tenantID, projectID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]any),
	})
	if err != nil {
		return nil, err
	}

	return ToDailyLogResponses(logs), nil
}

// Update amends a daily log's report fields
func (s *DailyLogService) Update(ctx context.Context, tenantID, logID uuid.UUID, req UpdateDailyLogRequest) (*DailyLogResponse, error) {
	d, err := s.logRepo.FindByIDForTenant(ctx, tenantID, logID)
	if err != nil {
		return nil, err
	}

	weather := d.Weather
	summary := d.WorkSummary
	headcount := d.Headcount
	hours := d.HoursWorked
	if req.Weather != nil {
		weather = *req.Weather
	}
	if req.WorkSummary != nil {
		summary = *req.WorkSummary
	}
	if req.Headcount != nil {
		headcount = *req.Headcount
	}
	if req.HoursWorked != nil {
		hours = *req.HoursWorked
	}
	if err := d.Update(weather, summary, headcount, hours); err != nil {
		return nil, err
	}

	if err := s.logRepo.Update(ctx, tenantID, d); err != nil {
		return nil, err
	}

	response := ToDailyLogResponse(d)
	return &response, nil
}

// Delete removes a daily log
func (s *DailyLogService) Delete(ctx context.Context, tenantID, logID uuid.UUID) error {
	return s.logRepo.DeleteForTenant(ctx, tenantID, logID)
}

// AddEquipmentUsage records equipment hours on a daily log. The equipment
// item must belong to the business.
func (s *DailyLogService) AddEquipmentUsage(ctx context.Context, tenantID, logID uuid.UUID, req AddEquipmentUsageRequest) (*EquipmentUsageResponse, error) {
	if _, err := s.logRepo.FindByIDForTenant(ctx, tenantID, logID); err != nil {
		return nil, err
	}
	if _, err := s.equipmentRepo.FindByIDForTenant(ctx, tenantID, req.EquipmentID); err != nil {
		return nil, err
	}

	u, err := fieldlog.NewEquipmentUsage(tenantID, logID, req.EquipmentID, req.Hours)
	if err != nil {
		return nil, err
	}
	u.Notes = req.Notes

	if err := s.equipUseRepo.Create(ctx, tenantID, u); err != nil {
		return nil, err
	}

	response := ToEquipmentUsageResponse(u)
	return &response, nil
}

// AddMaterialUsage records material consumption on a daily log
func (s *DailyLogService) AddMaterialUsage(ctx context.Context, tenantID, logID uuid.UUID, req AddMaterialUsageRequest) (*MaterialUsageResponse, error) {
	if _, err := s.logRepo.FindByIDForTenant(ctx, tenantID, logID); err != nil {
		return nil, err
	}

	u, err := fieldlog.NewMaterialUsage(tenantID, logID, req.Name, req.Quantity, req.Unit)
	if err != nil {
		return nil, err
	}

	if err := s.matUseRepo.Create(ctx, tenantID, u); err != nil {
		return nil, err
	}

	response := ToMaterialUsageResponse(u)
	return &response, nil
}

// RemoveEquipmentUsage deletes an equipment usage row
func (s *DailyLogService) RemoveEquipmentUsage(ctx context.Context, tenantID, usageID uuid.UUID) error {
	return s.equipUseRepo.DeleteForTenant(ctx, tenantID, usageID)
}

// RemoveMaterialUsage deletes a material usage row
func (s *DailyLogService) RemoveMaterialUsage(ctx context.Context, tenantID, usageID uuid.UUID) error {
	return s.matUseRepo.DeleteForTenant(ctx, tenantID, usageID)
}
