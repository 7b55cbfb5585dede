package handler

import (
	"github.com/gin-gonic/gin"

	projectapp "github.com/jobsight/backend/internal/application/project"
)

// MilestoneHandler handles project milestone endpoints
type MilestoneHandler struct {
	BaseHandler
	milestoneService *projectapp.MilestoneService
}

// NewMilestoneHandler creates a new MilestoneHandler
func NewMilestoneHandler(milestoneService *projectapp.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestoneService: milestoneService}
}

// Create adds a milestone to a project
func (h *MilestoneHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req projectapp.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.milestoneService.Create(c.Request.Context(), tenantID, projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByProject lists a project's milestones ordered by due date
func (h *MilestoneHandler) ListByProject(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	milestones, err := h.milestoneService.ListByProject(c.Request.Context(), tenantID, projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, milestones)
}

// Update applies partial changes to a milestone
func (h *MilestoneHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	milestoneID, ok := h.parseUUIDParam(c, "milestone_id")
	if !ok {
		return
	}

	var req projectapp.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.milestoneService.Update(c.Request.Context(), tenantID, milestoneID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Complete marks a milestone as reached
func (h *MilestoneHandler) Complete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	milestoneID, ok := h.parseUUIDParam(c, "milestone_id")
	if !ok {
		return
	}

	resp, err := h.milestoneService.Complete(c.Request.Context(), tenantID, milestoneID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a milestone
func (h *MilestoneHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	milestoneID, ok := h.parseUUIDParam(c, "milestone_id")
	if !ok {
		return
	}

	if err := h.milestoneService.Delete(c.Request.Context(), tenantID, milestoneID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
