package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jobsight/backend/internal/domain/project"
)

// =============================================================================
// Project DTOs
// =============================================================================

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description"`
	ClientID    *uuid.UUID       `json:"client_id"`
	Address     string           `json:"address" binding:"max=500"`
	City        string           `json:"city" binding:"max=100"`
	State       string           `json:"state" binding:"max=100"`
	Budget      *decimal.Decimal `json:"budget"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	ClientID    *uuid.UUID       `json:"client_id"`
	Address     *string          `json:"address" binding:"omitempty,max=500"`
	City        *string          `json:"city" binding:"omitempty,max=100"`
	State       *string          `json:"state" binding:"omitempty,max=100"`
	Budget      *decimal.Decimal `json:"budget"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
}

// TransitionProjectRequest represents a request to change a project's status
type TransitionProjectRequest struct {
	Status string `json:"status" binding:"required,oneof=planning active on_hold completed canceled"`
}

// ProjectListFilter represents filtering options for project listing
type ProjectListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=planning active on_hold completed canceled"`
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    *uuid.UUID      `json:"client_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToProjectResponse converts a domain project to a response DTO
func ToProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		Budget:      p.Budget,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProjectResponses converts a slice of domain projects to response DTOs
func ToProjectResponses(projects []project.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = ToProjectResponse(&projects[i])
	}
	return responses
}

// =============================================================================
// Milestone DTOs
// =============================================================================

// CreateMilestoneRequest represents a request to create a milestone
type CreateMilestoneRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateMilestoneRequest represents a request to update a milestone
type UpdateMilestoneRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// MilestoneResponse represents a milestone in API responses
type MilestoneResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToMilestoneResponse converts a domain milestone to a response DTO
func ToMilestoneResponse(m *project.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		Status:      string(m.Status),
		DueDate:     m.DueDate,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToMilestoneResponses converts a slice of domain milestones to response DTOs
func ToMilestoneResponses(milestones []project.Milestone) []MilestoneResponse {
	responses := make([]MilestoneResponse, len(milestones))
	for i := range milestones {
		responses[i] = ToMilestoneResponse(&milestones[i])
	}
	return responses
}

// =============================================================================
// Issue DTOs
// =============================================================================

// CreateIssueRequest represents a request to open an issue
type CreateIssueRequest struct {
	Title      string     `json:"title" binding:"required,min=1,max=200"`
	Details    string     `json:"details"`
	Severity   string     `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
}

// UpdateIssueRequest represents a request to update an issue
type UpdateIssueRequest struct {
	Title      *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Details    *string    `json:"details"`
	Severity   *string    `json:"severity" binding:"omitempty,oneof=low medium high critical"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
}

// IssueListFilter represents filtering options for issue listing
type IssueListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status" binding:"omitempty,oneof=open resolved closed"`
	Severity string `form:"severity" binding:"omitempty,oneof=low medium high critical"`
}

// IssueResponse represents an issue in API responses
type IssueResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"project_id"`
	Title      string     `json:"title"`
	Details    string     `json:"details"`
	Severity   string     `json:"severity"`
	Status     string     `json:"status"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
	ResolvedAt *time.Time `json:"resolved_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToIssueResponse converts a domain issue to a response DTO
func ToIssueResponse(i *project.Issue) IssueResponse {
	return IssueResponse{
		ID:         i.ID,
		ProjectID:  i.ProjectID,
		Title:      i.Title,
		Details:    i.Details,
		Severity:   string(i.Severity),
		Status:     string(i.Status),
		AssigneeID: i.AssigneeID,
		ResolvedAt: i.ResolvedAt,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

// ToIssueResponses converts a slice of domain issues to response DTOs
func ToIssueResponses(issues []project.Issue) []IssueResponse {
	responses := make([]IssueResponse, len(issues))
	for i := range issues {
		responses[i] = ToIssueResponse(&issues[i])
	}
	return responses
}
