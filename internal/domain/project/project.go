package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the status of a construction project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCanceled  ProjectStatus = "canceled"
)

// Project is a construction job for a client.
type Project struct {
	shared.TenantAggregateRoot
	ClientID    *uuid.UUID      `gorm:"type:uuid;index"`
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Status      ProjectStatus   `gorm:"type:varchar(20);not null;default:'planning'"`
	Address     string          `gorm:"type:text"`
	City        string          `gorm:"type:varchar(100)"`
	State       string          `gorm:"type:varchar(100)"`
	Budget      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	StartDate   *time.Time
	EndDate     *time.Time
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a project for the given business
func NewProject(tenantID uuid.UUID, name string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Project name cannot exceed 200 characters")
	}

	p := &Project{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Status:              ProjectStatusPlanning,
		Budget:              decimal.Zero,
	}

	p.AddDomainEvent(NewProjectCreatedEvent(p))

	return p, nil
}

// Update updates the project's basic information
func (p *Project) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Project name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// AssignClient links the project to a client
func (p *Project) AssignClient(clientID uuid.UUID) error {
	if clientID == uuid.Nil {
		return shared.NewDomainError("INVALID_CLIENT", "Client ID is required")
	}
	p.ClientID = &clientID
	p.UpdatedAt = time.Now()
	return nil
}

// SetBudget sets the project budget
func (p *Project) SetBudget(budget decimal.Decimal) error {
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}
	p.Budget = budget
	p.UpdatedAt = time.Now()
	return nil
}

// SetSchedule sets start/end dates
func (p *Project) SetSchedule(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return shared.NewDomainError("INVALID_SCHEDULE", "End date cannot be before start date")
	}
	p.StartDate = start
	p.EndDate = end
	p.UpdatedAt = time.Now()
	return nil
}

// Transition moves the project to a new status
func (p *Project) Transition(status ProjectStatus) error {
	switch status {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCanceled:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown project status")
	}
	if p.Status == ProjectStatusCompleted && status != ProjectStatusCompleted {
		return shared.ErrInvalidState
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	shared.TenantRepository[Project]

	// Search matches name or city case-insensitively
	Search(ctx context.Context, tenantID uuid.UUID, term string) ([]Project, error)

	// FindByIDs bulk-loads projects for denormalization lookups
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Project, error)

	// FindByClient lists projects for one client
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]Project, error)

	// FindByStatus lists projects in the given status
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status ProjectStatus, filter shared.Filter) ([]Project, error)
}
