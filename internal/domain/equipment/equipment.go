package equipment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EquipmentStatus represents the operational status of an equipment item
type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "available"
	EquipmentStatusAssigned    EquipmentStatus = "assigned"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
	EquipmentStatusRetired     EquipmentStatus = "retired"
)

// Equipment is a machine or tool owned by the business.
type Equipment struct {
	shared.TenantAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Category     string          `gorm:"type:varchar(100);index"`
	SerialNumber string          `gorm:"type:varchar(100)"`
	Status       EquipmentStatus `gorm:"type:varchar(20);not null;default:'available'"`
	PurchaseCost decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	HourlyRate   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PurchasedAt  *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Equipment) TableName() string {
	return "equipment"
}

// NewEquipment registers an equipment item for the given business
func NewEquipment(tenantID uuid.UUID, name, category string) (*Equipment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Equipment name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Equipment name cannot exceed 200 characters")
	}
	return &Equipment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Category:            category,
		Status:              EquipmentStatusAvailable,
		PurchaseCost:        decimal.Zero,
		HourlyRate:          decimal.Zero,
	}, nil
}

// Update updates the equipment's information
func (e *Equipment) Update(name, category, serialNumber string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Equipment name cannot be empty")
	}
	e.Name = name
	e.Category = category
	e.SerialNumber = serialNumber
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// Transition moves the equipment to a new status
func (e *Equipment) Transition(status EquipmentStatus) error {
	switch status {
	case EquipmentStatusAvailable, EquipmentStatusAssigned, EquipmentStatusMaintenance, EquipmentStatusRetired:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown equipment status")
	}
	if e.Status == EquipmentStatusRetired {
		return shared.ErrInvalidState
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// SetRates sets the purchase cost and billing rate
func (e *Equipment) SetRates(purchaseCost, hourlyRate decimal.Decimal) error {
	if purchaseCost.IsNegative() || hourlyRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rates cannot be negative")
	}
	e.PurchaseCost = purchaseCost
	e.HourlyRate = hourlyRate
	e.UpdatedAt = time.Now()
	return nil
}

// EquipmentRepository defines the interface for equipment persistence
type EquipmentRepository interface {
	shared.TenantRepository[Equipment]

	// Search matches name, category or serial number case-insensitively
	Search(ctx context.Context, tenantID uuid.UUID, term string) ([]Equipment, error)

	// FindByStatus lists equipment in the given status
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status EquipmentStatus, filter shared.Filter) ([]Equipment, error)
}
