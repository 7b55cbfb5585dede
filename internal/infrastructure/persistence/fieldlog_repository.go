package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/fieldlog"
	"github.com/jobsight/backend/internal/domain/shared"
)

// GormDailyLogRepository implements DailyLogRepository using GORM
type GormDailyLogRepository struct {
	*ScopedRepository[fieldlog.DailyLog]
}

// NewGormDailyLogRepository creates a new GormDailyLogRepository
func NewGormDailyLogRepository(db *gorm.DB) *GormDailyLogRepository {
	return &GormDailyLogRepository{
		ScopedRepository: NewScopedRepository[fieldlog.DailyLog](db, DailyLogSortFields, "log_date DESC"),
	}
}

// FindByProject lists logs of one project, newest date first
func (r *GormDailyLogRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]fieldlog.DailyLog, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["project_id"] = projectID
	if filter.OrderBy == "" {
		filter.OrderBy = "log_date"
		filter.OrderDir = "desc"
	}
	return r.FindAllForTenant(ctx, tenantID, filter)
}

var _ fieldlog.DailyLogRepository = (*GormDailyLogRepository)(nil)

// GormEquipmentUsageRepository implements EquipmentUsageRepository using GORM
type GormEquipmentUsageRepository struct {
	*ScopedRepository[fieldlog.EquipmentUsage]
}

// NewGormEquipmentUsageRepository creates a new GormEquipmentUsageRepository
func NewGormEquipmentUsageRepository(db *gorm.DB) *GormEquipmentUsageRepository {
	return &GormEquipmentUsageRepository{
		ScopedRepository: NewScopedRepository[fieldlog.EquipmentUsage](db,
			map[string]bool{"daily_log_id": true, "equipment_id": true},
			"created_at ASC"),
	}
}

// FindByDailyLog lists equipment rows of one daily log
func (r *GormEquipmentUsageRepository) FindByDailyLog(ctx context.Context, tenantID, dailyLogID uuid.UUID) ([]fieldlog.EquipmentUsage, error) {
	var rows []fieldlog.EquipmentUsage
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND daily_log_id = ?", tenantID, dailyLogID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ fieldlog.EquipmentUsageRepository = (*GormEquipmentUsageRepository)(nil)

// GormMaterialUsageRepository implements MaterialUsageRepository using GORM
type GormMaterialUsageRepository struct {
	*ScopedRepository[fieldlog.MaterialUsage]
}

// NewGormMaterialUsageRepository creates a new GormMaterialUsageRepository
func NewGormMaterialUsageRepository(db *gorm.DB) *GormMaterialUsageRepository {
	return &GormMaterialUsageRepository{
		ScopedRepository: NewScopedRepository[fieldlog.MaterialUsage](db,
			map[string]bool{"daily_log_id": true, "name": true},
			"created_at ASC"),
	}
}

// FindByDailyLog lists material rows of one daily log
func (r *GormMaterialUsageRepository) FindByDailyLog(ctx context.Context, tenantID, dailyLogID uuid.UUID) ([]fieldlog.MaterialUsage, error) {
	var rows []fieldlog.MaterialUsage
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND daily_log_id = ?", tenantID, dailyLogID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ fieldlog.MaterialUsageRepository = (*GormMaterialUsageRepository)(nil)
