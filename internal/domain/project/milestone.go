package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// MilestoneStatus represents the status of a project milestone
type MilestoneStatus string

const (
	MilestoneStatusPending   MilestoneStatus = "pending"
	MilestoneStatusCompleted MilestoneStatus = "completed"
	MilestoneStatusMissed    MilestoneStatus = "missed"
)

// Milestone is a dated deliverable within a project.
type Milestone struct {
	shared.TenantAggregateRoot
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Status      MilestoneStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	DueDate     *time.Time      `gorm:"index"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (Milestone) TableName() string {
	return "project_milestones"
}

// NewMilestone creates a milestone under a project
func NewMilestone(tenantID, projectID uuid.UUID, title string, due *time.Time) (*Milestone, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Milestone title cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Milestone requires a project")
	}
	return &Milestone{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProjectID:           projectID,
		Title:               title,
		Status:              MilestoneStatusPending,
		DueDate:             due,
	}, nil
}

// Complete marks the milestone completed
func (m *Milestone) Complete() error {
	if m.Status == MilestoneStatusCompleted {
		return shared.ErrInvalidState
	}
	now := time.Now()
	m.Status = MilestoneStatusCompleted
	m.CompletedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()
	return nil
}

// MarkMissed marks the milestone as missed past its due date
func (m *Milestone) MarkMissed() {
	m.Status = MilestoneStatusMissed
	m.UpdatedAt = time.Now()
}

// MilestoneRepository defines the interface for milestone persistence
type MilestoneRepository interface {
	shared.TenantRepository[Milestone]

	// FindByProject lists milestones of one project, soonest due first
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]Milestone, error)
}
