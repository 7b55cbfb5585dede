package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/notification"
	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/events"
)

// IssueNotifier dispatches a notification to a user. Delivery failures are
// the dispatcher's problem; issue operations never fail on notification errors.
type IssueNotifier interface {
	Dispatch(ctx context.Context, tenantID, userID uuid.UUID, kind notification.Kind, title, body string) error
}

// IssueService handles project issue operations
type IssueService struct {
	projectRepo project.ProjectRepository
	issueRepo   project.IssueRepository
	notifier    IssueNotifier
}

// NewIssueService creates a new IssueService. The notifier may be nil.
func NewIssueService(projectRepo project.ProjectRepository, issueRepo project.IssueRepository, notifier IssueNotifier) *IssueService {
	return &IssueService{
		projectRepo: projectRepo,
		issueRepo:   issueRepo,
		notifier:    notifier,
	}
}

// Create opens an issue on a project and notifies the assignee if set
func (s *IssueService) Create(ctx context.Context, tenantID, projectID uuid.UUID, req CreateIssueRequest) (*IssueResponse, error) {
	p, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	issue, err := project.NewIssue(tenantID, projectID, req.Title, project.IssueSeverity(req.Severity))
	if err != nil {
		return nil, err
	}
	issue.Details = req.Details
	if req.AssigneeID != nil {
		if err := issue.Assign(*req.AssigneeID); err != nil {
			return nil, err
		}
	}

	if err := s.issueRepo.Create(ctx, tenantID, issue); err != nil {
		return nil, err
	}
	events.Publish(ctx, issue)

	if s.notifier != nil && issue.AssigneeID != nil {
		title := fmt.Sprintf("Issue opened on %s", p.Name)
		_ = s.notifier.Dispatch(ctx, tenantID, *issue.AssigneeID, notification.KindIssueOpened, title, issue.Title)
	}

	response := ToIssueResponse(issue)
	return &response, nil
}

// GetByID retrieves an issue by ID
func (s *IssueService) GetByID(ctx context.Context, tenantID, issueID uuid.UUID) (*IssueResponse, error) {
	issue, err := s.issueRepo.FindByIDForTenant(ctx, tenantID, issueID)
	if err != nil {
		return nil, err
	}

	response := ToIssueResponse(issue)
	return &response, nil
}

// ListByProject lists issues of a project, newest first
func (s *IssueService) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter IssueListFilter) ([]IssueResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	domainFilter := buildIssueFilter(filter)

	issues, err := s.issueRepo.FindByProject(ctx, tenantID, projectID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToIssueResponses(issues), nil
}

// ListOpen lists open issues across all projects of the business
func (s *IssueService) ListOpen(ctx context.Context, tenantID uuid.UUID, filter IssueListFilter) ([]IssueResponse, error) {
	domainFilter := buildIssueFilter(filter)

	issues, err := s.issueRepo.FindOpen(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToIssueResponses(issues), nil
}

// Update updates an issue's title, details, severity or assignee
func (s *IssueService) Update(ctx context.Context, tenantID, issueID uuid.UUID, req UpdateIssueRequest) (*IssueResponse, error) {
	issue, err := s.issueRepo.FindByIDForTenant(ctx, tenantID, issueID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		issue.Title = *req.Title
	}
	if req.Details != nil {
		issue.Details = *req.Details
	}
	if req.Severity != nil {
		severity := project.IssueSeverity(*req.Severity)
		switch severity {
		case project.IssueSeverityLow, project.IssueSeverityMedium, project.IssueSeverityHigh, project.IssueSeverityCritical:
			issue.Severity = severity
		default:
			return nil, shared.NewDomainError("INVALID_SEVERITY", "Unknown issue severity")
		}
	}
	if req.AssigneeID != nil {
		if err := issue.Assign(*req.AssigneeID); err != nil {
			return nil, err
		}
	}

	if err := s.issueRepo.Update(ctx, tenantID, issue); err != nil {
		return nil, err
	}

	response := ToIssueResponse(issue)
	return &response, nil
}

// Resolve marks an issue resolved
func (s *IssueService) Resolve(ctx context.Context, tenantID, issueID uuid.UUID) (*IssueResponse, error) {
	return s.transition(ctx, tenantID, issueID, (*project.Issue).Resolve)
}

// Close closes a resolved issue
func (s *IssueService) Close(ctx context.Context, tenantID, issueID uuid.UUID) (*IssueResponse, error) {
	return s.transition(ctx, tenantID, issueID, (*project.Issue).Close)
}

func (s *IssueService) transition(ctx context.Context, tenantID, issueID uuid.UUID, apply func(*project.Issue) error) (*IssueResponse, error) {
	issue, err := s.issueRepo.FindByIDForTenant(ctx, tenantID, issueID)
	if err != nil {
		return nil, err
	}

	if err := apply(issue); err != nil {
		return nil, err
	}

	if err := s.issueRepo.Update(ctx, tenantID, issue); err != nil {
		return nil, err
	}

	response := ToIssueResponse(issue)
	return &response, nil
}

// Delete removes an issue
func (s *IssueService) Delete(ctx context.Context, tenantID, issueID uuid.UUID) error {
	return s.issueRepo.DeleteForTenant(ctx, tenantID, issueID)
}

func buildIssueFilter(filter IssueListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Severity != "" {
		domainFilter.Filters["severity"] = filter.Severity
	}
	return domainFilter
}
