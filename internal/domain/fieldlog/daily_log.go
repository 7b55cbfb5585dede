package fieldlog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// DailyLog is the foreman's daily report for a project: weather, work
// performed, crew headcount, plus child rows for equipment hours and
// materials used.
type DailyLog struct {
	shared.TenantAggregateRoot
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index:idx_daily_log_project_date,priority:1"`
	LogDate     time.Time `gorm:"type:date;not null;index:idx_daily_log_project_date,priority:2"`
	Weather     string    `gorm:"type:varchar(100)"`
	WorkSummary string    `gorm:"type:text"`
	Headcount   int       `gorm:"not null;default:0"`
	HoursWorked float64   `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DailyLog) TableName() string {
	return "daily_logs"
}

// NewDailyLog creates a daily log entry for a project
func NewDailyLog(tenantID, projectID uuid.UUID, logDate time.Time, workSummary string) (*DailyLog, error) {
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Daily log requires a project")
	}
	if strings.TrimSpace(workSummary) == "" {
		return nil, shared.NewDomainError("INVALID_SUMMARY", "Work summary cannot be empty")
	}
	if logDate.IsZero() {
		logDate = time.Now()
	}
	return &DailyLog{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProjectID:           projectID,
		LogDate:             logDate.Truncate(24 * time.Hour),
		WorkSummary:         workSummary,
	}, nil
}

// Update updates the log's report fields
func (d *DailyLog) Update(weather, workSummary string, headcount int, hoursWorked float64) error {
	if strings.TrimSpace(workSummary) == "" {
		return shared.NewDomainError("INVALID_SUMMARY", "Work summary cannot be empty")
	}
	if headcount < 0 || hoursWorked < 0 {
		return shared.NewDomainError("INVALID_VALUE", "Headcount and hours cannot be negative")
	}
	d.Weather = weather
	d.WorkSummary = workSummary
	d.Headcount = headcount
	d.HoursWorked = hoursWorked
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// EquipmentUsage records hours on a machine during one daily log.
type EquipmentUsage struct {
	shared.TenantAggregateRoot
	DailyLogID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Hours       float64   `gorm:"not null;default:0"`
	Notes       string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (EquipmentUsage) TableName() string {
	return "daily_log_equipment"
}

// NewEquipmentUsage records equipment hours on a daily log
func NewEquipmentUsage(tenantID, dailyLogID, equipmentID uuid.UUID, hours float64) (*EquipmentUsage, error) {
	if dailyLogID == uuid.Nil || equipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USAGE", "Usage requires a daily log and an equipment item")
	}
	if hours < 0 {
		return nil, shared.NewDomainError("INVALID_HOURS", "Hours cannot be negative")
	}
	return &EquipmentUsage{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DailyLogID:          dailyLogID,
		EquipmentID:         equipmentID,
		Hours:               hours,
	}, nil
}

// MaterialUsage records material quantities consumed during one daily log.
type MaterialUsage struct {
	shared.TenantAggregateRoot
	DailyLogID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(200);not null"`
	Quantity   float64   `gorm:"not null;default:0"`
	Unit       string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (MaterialUsage) TableName() string {
	return "daily_log_materials"
}

// NewMaterialUsage records material consumption on a daily log
func NewMaterialUsage(tenantID, dailyLogID uuid.UUID, name string, quantity float64, unit string) (*MaterialUsage, error) {
	if dailyLogID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USAGE", "Usage requires a daily log")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	return &MaterialUsage{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DailyLogID:          dailyLogID,
		Name:                name,
		Quantity:            quantity,
		Unit:                unit,
	}, nil
}

// DailyLogRepository defines the interface for daily log persistence
type DailyLogRepository interface {
	shared.TenantRepository[DailyLog]

	// FindByProject lists logs of one project, newest date first
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]DailyLog, error)
}

// EquipmentUsageRepository defines the interface for log equipment rows
type EquipmentUsageRepository interface {
	shared.TenantRepository[EquipmentUsage]

	// FindByDailyLog lists equipment rows of one daily log
	FindByDailyLog(ctx context.Context, tenantID, dailyLogID uuid.UUID) ([]EquipmentUsage, error)
}

// MaterialUsageRepository defines the interface for log material rows
type MaterialUsageRepository interface {
	shared.TenantRepository[MaterialUsage]

	// FindByDailyLog lists material rows of one daily log
	FindByDailyLog(ctx context.Context, tenantID, dailyLogID uuid.UUID) ([]MaterialUsage, error)
}
