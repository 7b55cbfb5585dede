package handler

import (
	"github.com/gin-gonic/gin"

	projectapp "github.com/jobsight/backend/internal/application/project"
)

// IssueHandler handles project issue endpoints
type IssueHandler struct {
	BaseHandler
	issueService *projectapp.IssueService
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(issueService *projectapp.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// Create reports an issue on a project
func (h *IssueHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.issueService.Create(c.Request.Context(), tenantID, projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByProject lists a project's issues
func (h *IssueHandler) ListByProject(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var filter projectapp.IssueListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	issues, err := h.issueService.ListByProject(c.Request.Context(), tenantID, projectID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, issues)
}

// ListOpen lists open issues across all projects
func (h *IssueHandler) ListOpen(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter projectapp.IssueListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	issues, err := h.issueService.ListOpen(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, issues)
}

// GetByID retrieves an issue by ID
func (h *IssueHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	issueID, ok := h.parseUUIDParam(c, "issue_id")
	if !ok {
		return
	}

	resp, err := h.issueService.GetByID(c.Request.Context(), tenantID, issueID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies partial changes to an issue
func (h *IssueHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	issueID, ok := h.parseUUIDParam(c, "issue_id")
	if !ok {
		return
	}

	var req projectapp.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.issueService.Update(c.Request.Context(), tenantID, issueID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Resolve marks an issue as resolved
func (h *IssueHandler) Resolve(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	issueID, ok := h.parseUUIDParam(c, "issue_id")
	if !ok {
		return
	}

	resp, err := h.issueService.Resolve(c.Request.Context(), tenantID, issueID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Close closes an issue
func (h *IssueHandler) Close(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	issueID, ok := h.parseUUIDParam(c, "issue_id")
	if !ok {
		return
	}

	resp, err := h.issueService.Close(c.Request.Context(), tenantID, issueID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes an issue
func (h *IssueHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	issueID, ok := h.parseUUIDParam(c, "issue_id")
	if !ok {
		return
	}

	if err := h.issueService.Delete(c.Request.Context(), tenantID, issueID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
