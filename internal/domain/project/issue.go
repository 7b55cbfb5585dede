package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// IssueSeverity grades the impact of a project issue
type IssueSeverity string

const (
	IssueSeverityLow      IssueSeverity = "low"
	IssueSeverityMedium   IssueSeverity = "medium"
	IssueSeverityHigh     IssueSeverity = "high"
	IssueSeverityCritical IssueSeverity = "critical"
)

// IssueStatus represents the status of an issue
type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "open"
	IssueStatusResolved IssueStatus = "resolved"
	IssueStatusClosed   IssueStatus = "closed"
)

// Issue is a problem raised on a project (safety, delay, defect, ...).
type Issue struct {
	shared.TenantAggregateRoot
	ProjectID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	Title      string        `gorm:"type:varchar(200);not null"`
	Details    string        `gorm:"type:text"`
	Severity   IssueSeverity `gorm:"type:varchar(20);not null;default:'medium'"`
	Status     IssueStatus   `gorm:"type:varchar(20);not null;default:'open'"`
	AssigneeID *uuid.UUID    `gorm:"type:uuid;index"`
	ResolvedAt *time.Time
}

// TableName returns the table name for GORM
func (Issue) TableName() string {
	return "project_issues"
}

// NewIssue opens an issue on a project
func NewIssue(tenantID, projectID uuid.UUID, title string, severity IssueSeverity) (*Issue, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Issue title cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Issue requires a project")
	}
	switch severity {
	case IssueSeverityLow, IssueSeverityMedium, IssueSeverityHigh, IssueSeverityCritical:
	case "":
		severity = IssueSeverityMedium
	default:
		return nil, shared.NewDomainError("INVALID_SEVERITY", "Unknown issue severity")
	}

	i := &Issue{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ProjectID:           projectID,
		Title:               title,
		Severity:            severity,
		Status:              IssueStatusOpen,
	}

	i.AddDomainEvent(NewIssueOpenedEvent(i))

	return i, nil
}

// Assign sets the responsible user
func (i *Issue) Assign(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee is required")
	}
	i.AssigneeID = &userID
	i.UpdatedAt = time.Now()
	return nil
}

// Resolve marks the issue resolved
func (i *Issue) Resolve() error {
	if i.Status != IssueStatusOpen {
		return shared.ErrInvalidState
	}
	now := time.Now()
	i.Status = IssueStatusResolved
	i.ResolvedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()
	return nil
}

// Close closes a resolved issue
func (i *Issue) Close() error {
	if i.Status == IssueStatusOpen {
		return shared.ErrInvalidState
	}
	i.Status = IssueStatusClosed
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IssueRepository defines the interface for issue persistence
type IssueRepository interface {
	shared.TenantRepository[Issue]

	// FindByProject lists issues of one project, newest first
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]Issue, error)

	// FindOpen lists open issues across all projects of the business
	FindOpen(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Issue, error)
}
