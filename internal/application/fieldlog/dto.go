package fieldlog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/fieldlog"
)

// CreateDailyLogRequest represents a request to file a daily log
type CreateDailyLogRequest struct {
	LogDate     time.Time `json:"log_date"`
	Weather     string    `json:"weather" binding:"max=100"`
	WorkSummary string    `json:"work_summary" binding:"required,min=1"`
	Headcount   int       `json:"headcount" binding:"min=0"`
	HoursWorked float64   `json:"hours_worked" binding:"min=0"`
}

// UpdateDailyLogRequest represents a request to amend a daily log
type UpdateDailyLogRequest struct {
	Weather     *string  `json:"weather" binding:"omitempty,max=100"`
	WorkSummary *string  `json:"work_summary" binding:"omitempty,min=1"`
	Headcount   *int     `json:"headcount" binding:"omitempty,min=0"`
	HoursWorked *float64 `json:"hours_worked" binding:"omitempty,min=0"`
}

// DailyLogListFilter represents filtering options for log listing
type DailyLogListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// DailyLogResponse represents a daily log in API responses
type DailyLogResponse struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	LogDate     time.Time `json:"log_date"`
	Weather     string    `json:"weather"`
	WorkSummary string    `json:"work_summary"`
	Headcount   int       `json:"headcount"`
	HoursWorked float64   `json:"hours_worked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToDailyLogResponse converts a domain daily log to a response DTO
func ToDailyLogResponse(d *fieldlog.DailyLog) DailyLogResponse {
	return DailyLogResponse{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		LogDate:     d.LogDate,
		Weather:     d.Weather,
		WorkSummary: d.WorkSummary,
		Headcount:   d.Headcount,
		HoursWorked: d.HoursWorked,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDailyLogResponses converts a slice of daily logs to response DTOs
func ToDailyLogResponses(logs []fieldlog.DailyLog) []DailyLogResponse {
	responses := make([]DailyLogResponse, len(logs))
	for i := range logs {
		responses[i] = ToDailyLogResponse(&logs[i])
	}
	return responses
}

// AddEquipmentUsageRequest represents a request to record equipment hours
type AddEquipmentUsageRequest struct {
	EquipmentID uuid.UUID `json:"equipment_id" binding:"required"`
	Hours       float64   `json:"hours" binding:"min=0"`
	Notes       string    `json:"notes" binding:"max=500"`
}

// EquipmentUsageResponse represents an equipment usage row in API responses
type EquipmentUsageResponse struct {
	ID          uuid.UUID `json:"id"`
	DailyLogID  uuid.UUID `json:"daily_log_id"`
	EquipmentID uuid.UUID `json:"equipment_id"`
	Hours       float64   `json:"hours"`
	Notes       string    `json:"notes"`
}

// ToEquipmentUsageResponse converts a domain usage row to a response DTO
func ToEquipmentUsageResponse(u *fieldlog.EquipmentUsage) EquipmentUsageResponse {
	return EquipmentUsageResponse{
		ID:          u.ID,
		DailyLogID:  u.DailyLogID,
		EquipmentID: u.EquipmentID,
		Hours:       u.Hours,
		Notes:       u.Notes,
	}
}

// AddMaterialUsageRequest represents a request to record material consumption
type AddMaterialUsageRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=200"`
	Quantity float64 `json:"quantity" binding:"min=0"`
	Unit     string  `json:"unit" binding:"max=50"`
}

// MaterialUsageResponse represents a material usage row in API responses
type MaterialUsageResponse struct {
	ID         uuid.UUID `json:"id"`
	DailyLogID uuid.UUID `json:"daily_log_id"`
	Name       string    `json:"name"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
}

// ToMaterialUsageResponse converts a domain usage row to a response DTO
func ToMaterialUsageResponse(u *fieldlog.MaterialUsage) MaterialUsageResponse {
	return MaterialUsageResponse{
		ID:         u.ID,
		DailyLogID: u.DailyLogID,
		Name:       u.Name,
		Quantity:   u.Quantity,
		Unit:       u.Unit,
	}
}

// DailyLogDetailResponse is a daily log with its child usage rows
type DailyLogDetailResponse struct {
	DailyLogResponse
	Equipment []EquipmentUsageResponse `json:"equipment"`
	Materials []MaterialUsageResponse  `json:"materials"`
}
