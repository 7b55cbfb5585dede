package crew

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/crew"
)

// CreateCrewRequest represents a request to create a crew
type CreateCrewRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	Specialty string     `json:"specialty" binding:"max=100"`
	ForemanID *uuid.UUID `json:"foreman_id"`
	Notes     string     `json:"notes"`
}

// UpdateCrewRequest represents a request to update a crew
type UpdateCrewRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Specialty *string    `json:"specialty" binding:"omitempty,max=100"`
	ForemanID *uuid.UUID `json:"foreman_id"`
	Notes     *string    `json:"notes"`
}

// CrewListFilter represents filtering options for crew listing
type CrewListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
}

// CrewResponse represents a crew in API responses
type CrewResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Specialty string     `json:"specialty"`
	ForemanID *uuid.UUID `json:"foreman_id"`
	Active    bool       `json:"active"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToCrewResponse converts a domain crew to a response DTO
func ToCrewResponse(c *crew.Crew) CrewResponse {
	return CrewResponse{
		ID:        c.ID,
		Name:      c.Name,
		Specialty: c.Specialty,
		ForemanID: c.ForemanID,
		Active:    c.Active,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCrewResponses converts a slice of domain crews to response DTOs
func ToCrewResponses(crews []crew.Crew) []CrewResponse {
	responses := make([]CrewResponse, len(crews))
	for i := range crews {
		responses[i] = ToCrewResponse(&crews[i])
	}
	return responses
}

// CreateMemberRequest represents a request to add a crew member
type CreateMemberRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Role  string `json:"role" binding:"max=100"`
	Phone string `json:"phone" binding:"max=50"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
}

// UpdateMemberRequest represents a request to update a crew member
type UpdateMemberRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Role  *string `json:"role" binding:"omitempty,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=50"`
	Email *string `json:"email" binding:"omitempty,email,max=200"`
}

// MemberResponse represents a crew member in API responses
type MemberResponse struct {
	ID        uuid.UUID `json:"id"`
	CrewID    uuid.UUID `json:"crew_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToMemberResponse converts a domain crew member to a response DTO
func ToMemberResponse(m *crew.CrewMember) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		CrewID:    m.CrewID,
		Name:      m.Name,
		Role:      m.Role,
		Phone:     m.Phone,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToMemberResponses converts a slice of domain crew members to response DTOs
func ToMemberResponses(members []crew.CrewMember) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i := range members {
		responses[i] = ToMemberResponse(&members[i])
	}
	return responses
}

// AssignCrewRequest represents a request to assign a crew to a project
type AssignCrewRequest struct {
	CrewID    uuid.UUID  `json:"crew_id" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// ProjectCrewResponse represents a project-crew assignment in API responses
type ProjectCrewResponse struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	CrewID    uuid.UUID  `json:"crew_id"`
	CrewName  string     `json:"crew_name,omitempty"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToProjectCrewResponse converts a domain assignment to a response DTO
func ToProjectCrewResponse(pc *crew.ProjectCrew) ProjectCrewResponse {
	return ProjectCrewResponse{
		ID:        pc.ID,
		ProjectID: pc.ProjectID,
		CrewID:    pc.CrewID,
		StartDate: pc.StartDate,
		EndDate:   pc.EndDate,
		CreatedAt: pc.CreatedAt,
	}
}
