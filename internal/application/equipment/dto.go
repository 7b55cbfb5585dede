package equipment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jobsight/backend/internal/domain/equipment"
)

// CreateEquipmentRequest represents a request to register an equipment item
type CreateEquipmentRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Category     string           `json:"category" binding:"max=100"`
	SerialNumber string           `json:"serial_number" binding:"max=100"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate"`
	PurchasedAt  *time.Time       `json:"purchased_at"`
	Notes        string           `json:"notes"`
}

// UpdateEquipmentRequest represents a request to update an equipment item
type UpdateEquipmentRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category     *string          `json:"category" binding:"omitempty,max=100"`
	SerialNumber *string          `json:"serial_number" binding:"omitempty,max=100"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate"`
	PurchasedAt  *time.Time       `json:"purchased_at"`
	Notes        *string          `json:"notes"`
}

// TransitionEquipmentRequest represents a request to change equipment status
type TransitionEquipmentRequest struct {
	Status string `json:"status" binding:"required,oneof=available assigned maintenance retired"`
}

// EquipmentListFilter represents filtering options for equipment listing
type EquipmentListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=available assigned maintenance retired"`
	Category string `form:"category"`
}

// EquipmentResponse represents an equipment item in API responses
type EquipmentResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SerialNumber string          `json:"serial_number"`
	Status       string          `json:"status"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	PurchasedAt  *time.Time      `json:"purchased_at"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Version      int             `json:"version"`
}

// ToEquipmentResponse converts a domain equipment item to a response DTO
func ToEquipmentResponse(e *equipment.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:           e.ID,
		Name:         e.Name,
		Category:     e.Category,
		SerialNumber: e.SerialNumber,
		Status:       string(e.Status),
		PurchaseCost: e.PurchaseCost,
		HourlyRate:   e.HourlyRate,
		PurchasedAt:  e.PurchasedAt,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		Version:      e.Version,
	}
}

// ToEquipmentResponses converts a slice of domain equipment to response DTOs
func ToEquipmentResponses(items []equipment.Equipment) []EquipmentResponse {
	responses := make([]EquipmentResponse, len(items))
	for i := range items {
		responses[i] = ToEquipmentResponse(&items[i])
	}
	return responses
}

// SpecificationRequest carries the label and value of one equipment
// specification; used for both create and update.
type SpecificationRequest struct {
	Label string `json:"label" binding:"required,min=1,max=100"`
	Value string `json:"value" binding:"required,min=1,max=255"`
}

// SpecificationResponse represents an equipment specification in API responses
type SpecificationResponse struct {
	ID          uuid.UUID `json:"id"`
	EquipmentID uuid.UUID `json:"equipment_id"`
	Label       string    `json:"label"`
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSpecificationResponse converts a domain specification to a response DTO
func ToSpecificationResponse(s *equipment.Specification) SpecificationResponse {
	return SpecificationResponse{
		ID:          s.ID,
		EquipmentID: s.EquipmentID,
		Label:       s.Label,
		Value:       s.Value,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSpecificationResponses converts a slice of domain specifications to response DTOs
func ToSpecificationResponses(specs []equipment.Specification) []SpecificationResponse {
	responses := make([]SpecificationResponse, len(specs))
	for i := range specs {
		responses[i] = ToSpecificationResponse(&specs[i])
	}
	return responses
}

// CreateAssignmentRequest represents a request to lend equipment out
type CreateAssignmentRequest struct {
	CrewID    *uuid.UUID `json:"crew_id"`
	ProjectID *uuid.UUID `json:"project_id"`
	Notes     string     `json:"notes"`
}

// AssignmentListFilter represents filtering options for open-assignment listing
type AssignmentListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// AssignmentResponse represents an equipment assignment in API responses.
// CrewName and ProjectName are resolved at read time; a deleted crew or
// project reads as "Unknown Crew" / "Unknown Project".
type AssignmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	EquipmentID uuid.UUID  `json:"equipment_id"`
	CrewID      *uuid.UUID `json:"crew_id"`
	CrewName    string     `json:"crew_name,omitempty"`
	ProjectID   *uuid.UUID `json:"project_id"`
	ProjectName string     `json:"project_name,omitempty"`
	AssignedAt  time.Time  `json:"assigned_at"`
	ReturnedAt  *time.Time `json:"returned_at"`
	Notes       string     `json:"notes"`
}

// ToAssignmentResponse converts a domain assignment to a response DTO
func ToAssignmentResponse(a *equipment.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID,
		EquipmentID: a.EquipmentID,
		CrewID:      a.CrewID,
		ProjectID:   a.ProjectID,
		AssignedAt:  a.AssignedAt,
		ReturnedAt:  a.ReturnedAt,
		Notes:       a.Notes,
	}
}

// CreateMaintenanceRequest represents a request to log maintenance work
type CreateMaintenanceRequest struct {
	Description string    `json:"description" binding:"required,min=1,max=500"`
	PerformedAt time.Time `json:"performed_at"`
	CostCents   int64     `json:"cost_cents" binding:"min=0"`
}

// MaintenanceResponse represents a maintenance record in API responses
type MaintenanceResponse struct {
	ID          uuid.UUID `json:"id"`
	EquipmentID uuid.UUID `json:"equipment_id"`
	Description string    `json:"description"`
	PerformedAt time.Time `json:"performed_at"`
	CostCents   int64     `json:"cost_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToMaintenanceResponse converts a domain maintenance record to a response DTO
func ToMaintenanceResponse(m *equipment.MaintenanceRecord) MaintenanceResponse {
	return MaintenanceResponse{
		ID:          m.ID,
		EquipmentID: m.EquipmentID,
		Description: m.Description,
		PerformedAt: m.PerformedAt,
		CostCents:   m.CostCents,
		CreatedAt:   m.CreatedAt,
	}
}

// ToMaintenanceResponses converts a slice of maintenance records to response DTOs
func ToMaintenanceResponses(records []equipment.MaintenanceRecord) []MaintenanceResponse {
	responses := make([]MaintenanceResponse, len(records))
	for i := range records {
		responses[i] = ToMaintenanceResponse(&records[i])
	}
	return responses
}
