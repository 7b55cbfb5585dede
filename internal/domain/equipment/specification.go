package equipment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// Specification is one labeled technical attribute of an equipment item,
// e.g. "operating weight" -> "22.5 t".
type Specification struct {
	shared.TenantAggregateRoot
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Label       string    `gorm:"type:varchar(100);not null"`
	Value       string    `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (Specification) TableName() string {
	return "equipment_specifications"
}

// NewSpecification records a technical attribute of an equipment item
func NewSpecification(tenantID, equipmentID uuid.UUID, label, value string) (*Specification, error) {
	if equipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EQUIPMENT", "Specification requires an equipment item")
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Specification label cannot be empty")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, shared.NewDomainError("INVALID_VALUE", "Specification value cannot be empty")
	}
	return &Specification{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EquipmentID:         equipmentID,
		Label:               label,
		Value:               value,
	}, nil
}

// Update changes the label and value of the specification
func (s *Specification) Update(label, value string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return shared.NewDomainError("INVALID_LABEL", "Specification label cannot be empty")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return shared.NewDomainError("INVALID_VALUE", "Specification value cannot be empty")
	}
	s.Label = label
	s.Value = value
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SpecificationRepository defines the interface for specification persistence
type SpecificationRepository interface {
	shared.TenantRepository[Specification]

	// FindByEquipment lists specifications of one equipment item
	FindByEquipment(ctx context.Context, tenantID, equipmentID uuid.UUID) ([]Specification, error)
}
