package project

import (
	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

const (
	EventTypeProjectCreated = "project.created"
	EventTypeIssueOpened    = "project.issue.opened"
)

// ProjectCreatedEvent is raised when a project is created
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewProjectCreatedEvent creates a ProjectCreatedEvent
func NewProjectCreatedEvent(p *Project) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProjectCreated, "Project", p.ID, p.TenantID),
		Name:            p.Name,
	}
}

// IssueOpenedEvent is raised when a project issue is opened; the
// notification dispatcher listens for it.
type IssueOpenedEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID `json:"project_id"`
	Title     string    `json:"title"`
	Severity  string    `json:"severity"`
}

// NewIssueOpenedEvent creates an IssueOpenedEvent
func NewIssueOpenedEvent(i *Issue) *IssueOpenedEvent {
	return &IssueOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIssueOpened, "Issue", i.ID, i.TenantID),
		ProjectID:       i.ProjectID,
		Title:           i.Title,
		Severity:        string(i.Severity),
	}
}
