package equipment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// Assignment records an equipment item being lent to a crew on a project.
type Assignment struct {
	shared.TenantAggregateRoot
	EquipmentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CrewID      *uuid.UUID `gorm:"type:uuid;index"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt  time.Time  `gorm:"not null"`
	ReturnedAt  *time.Time
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Assignment) TableName() string {
	return "equipment_assignments"
}

// NewAssignment starts an assignment of equipment to a crew and/or project
func NewAssignment(tenantID, equipmentID uuid.UUID, crewID, projectID *uuid.UUID) (*Assignment, error) {
	if equipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT", "Assignment requires an equipment item")
	}
	if (crewID == nil || *crewID == uuid.Nil) && (projectID == nil || *projectID == uuid.Nil) {
		return nil, shared.NewDomainError("INVALID_ASSIGNMENT", "Assignment requires a crew or a project")
	}
	return &Assignment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EquipmentID:         equipmentID,
		CrewID:              crewID,
		ProjectID:           projectID,
		AssignedAt:          time.Now(),
	}, nil
}

// Return closes the assignment
func (a *Assignment) Return() error {
	if a.ReturnedAt != nil {
		return shared.ErrInvalidState
	}
	now := time.Now()
	a.ReturnedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
	return nil
}

// IsOpen reports whether the equipment is still out
func (a *Assignment) IsOpen() bool {
	return a.ReturnedAt == nil
}

// MaintenanceRecord logs service work done on an equipment item.
type MaintenanceRecord struct {
	shared.TenantAggregateRoot
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:varchar(500);not null"`
	PerformedAt time.Time `gorm:"not null;index"`
	CostCents   int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (MaintenanceRecord) TableName() string {
	return "equipment_maintenance"
}

// NewMaintenanceRecord logs maintenance on an equipment item
func NewMaintenanceRecord(tenantID, equipmentID uuid.UUID, description string, performedAt time.Time) (*MaintenanceRecord, error) {
	if equipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT", "Maintenance requires an equipment item")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Maintenance description cannot be empty")
	}
	if performedAt.IsZero() {
		performedAt = time.Now()
	}
	return &MaintenanceRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EquipmentID:         equipmentID,
		Description:         description,
		PerformedAt:         performedAt,
	}, nil
}

// AssignmentRepository defines the interface for assignment persistence
type AssignmentRepository interface {
	shared.TenantRepository[Assignment]

	// FindByEquipment lists assignments of one equipment item, newest first
	FindByEquipment(ctx context.Context, tenantID, equipmentID uuid.UUID) ([]Assignment, error)

	// FindOpen lists assignments that have not been returned yet
	FindOpen(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Assignment, error)
}

// MaintenanceRepository defines the interface for maintenance persistence
type MaintenanceRepository interface {
	shared.TenantRepository[MaintenanceRecord]

	// FindByEquipment lists maintenance history of one equipment item
	FindByEquipment(ctx context.Context, tenantID, equipmentID uuid.UUID) ([]MaintenanceRecord, error)
}
