package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/equipment"
	"github.com/jobsight/backend/internal/domain/shared"
)

// GormEquipmentRepository implements EquipmentRepository using GORM
type GormEquipmentRepository struct {
	*ScopedRepository[equipment.Equipment]
}

// NewGormEquipmentRepository creates a new GormEquipmentRepository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{
		ScopedRepository: NewScopedRepository[equipment.Equipment](db, EquipmentSortFields, "name ASC"),
	}
}

// Search matches name, category or serial number case-insensitively
func (r *GormEquipmentRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]equipment.Equipment, error) {
	return r.FindAllForTenant(ctx, tenantID, shared.SearchFilter(term, "name", "category", "serial_number"))
}

// FindByStatus lists equipment in the given status
func (r *GormEquipmentRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status equipment.EquipmentStatus, filter shared.Filter) ([]equipment.Equipment, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["status"] = status
	return r.FindAllForTenant(ctx, tenantID, filter)
}

var _ equipment.EquipmentRepository = (*GormEquipmentRepository)(nil)

// GormAssignmentRepository implements AssignmentRepository using GORM
type GormAssignmentRepository struct {
	*ScopedRepository[equipment.Assignment]
}

// NewGormAssignmentRepository creates a new GormAssignmentRepository
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		ScopedRepository: NewScopedRepository[equipment.Assignment](db, AssignmentSortFields, "assigned_at DESC"),
	}
}

// FindByEquipment lists assignments of one equipment item, newest first
func (r *GormAssignmentRepository) FindByEquipment(ctx context.Context, tenantID, equipmentID uuid.UUID) ([]equipment.Assignment, error) {
	var assignments []equipment.Assignment
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND equipment_id = ?", tenantID, equipmentID).
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindOpen lists assignments that have not been returned yet
func (r *GormAssignmentRepository) FindOpen(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]equipment.Assignment, error) {
	var model equipment.Assignment
	var assignments []equipment.Assignment
	query := r.DB().WithContext(ctx).Model(&model).
		Where("tenant_id = ? AND returned_at IS NULL", tenantID)
	query = r.applyConditions(query, filter)
	query = r.applyOrderAndPage(query, filter)

	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

var _ equipment.AssignmentRepository = (*GormAssignmentRepository)(nil)

// GormMaintenanceRepository implements MaintenanceRepository using GORM
type GormMaintenanceRepository struct {
	*ScopedRepository[equipment.MaintenanceRecord]
}

// NewGormMaintenanceRepository creates a new GormMaintenanceRepository
func NewGormMaintenanceRepository(db *gorm.DB) *GormMaintenanceRepository {
	return &GormMaintenanceRepository{
		ScopedRepository: NewScopedRepository[equipment.MaintenanceRecord](db, MaintenanceSortFields, "performed_at DESC"),
	}
}

// FindByEquipment lists maintenance history of one equipment item
func (r *GormMaintenanceRepository) FindByEquipment(ctx context.Context, tenantID, equipmentID uuid.UUID) ([]equipment.MaintenanceRecord, error) {
	var records []equipment.MaintenanceRecord
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND equipment_id = ?", tenantID, equipmentID).
		Order("performed_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

var _ equipment.MaintenanceRepository = (*GormMaintenanceRepository)(nil)

// GormSpecificationRepository implements SpecificationRepository using GORM
type GormSpecificationRepository struct {
	*ScopedRepository[equipment.Specification]
}

// NewGormSpecificationRepository creates a new GormSpecificationRepository
func NewGormSpecificationRepository(db *gorm.DB) *GormSpecificationRepository {
	return &GormSpecificationRepository{
		ScopedRepository: NewScopedRepository[equipment.Specification](db, SpecificationSortFields, "label ASC"),
	}
}

// FindByEquipment lists specifications of one equipment item
func (r *GormSpecificationRepository) FindByEquipment(ctx context.Context, tenantID, equipmentID uuid.UUID) ([]equipment.Specification, error) {
	var specs []equipment.Specification
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND equipment_id = ?", tenantID, equipmentID).
		Order("label ASC").
		Find(&specs).Error; err != nil {
		return nil, err
	}
	return specs, nil
}

var _ equipment.SpecificationRepository = (*GormSpecificationRepository)(nil)
