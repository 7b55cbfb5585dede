package handler

import (
	"github.com/gin-gonic/gin"

	crewapp "github.com/jobsight/backend/internal/application/crew"
)

// CrewHandler handles crew roster and project assignment endpoints
type CrewHandler struct {
	BaseHandler
	crewService *crewapp.CrewService
}

// NewCrewHandler creates a new CrewHandler
func NewCrewHandler(crewService *crewapp.CrewService) *CrewHandler {
	return &CrewHandler{crewService: crewService}
}

// Create creates a new crew
func (h *CrewHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req crewapp.CreateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.crewService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List retrieves crews with filtering and pagination
func (h *CrewHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter crewapp.CrewListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	crews, total, err := h.crewService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, crews, filter.Page, filter.PageSize, total)
}

// GetByID retrieves a crew by ID
func (h *CrewHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	crewID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.crewService.GetByID(c.Request.Context(), tenantID, crewID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies partial changes to a crew
func (h *CrewHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	crewID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req crewapp.UpdateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.crewService.Update(c.Request.Context(), tenantID, crewID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate stands a crew down without losing its history
func (h *CrewHandler) Deactivate(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	crewID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.crewService.Deactivate(c.Request.Context(), tenantID, crewID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a crew
func (h *CrewHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	crewID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.crewService.Delete(c.Request.Context(), tenantID, crewID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AddMember adds a worker to a crew
func (h *CrewHandler) AddMember(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	crewID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req crewapp.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.crewService.AddMember(c.Request.Context(), tenantID, crewID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListMembers lists a crew's members
func (h *CrewHandler) ListMembers(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	crewID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.crewService.ListMembers(c.Request.Context(), tenantID, crewID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, members)
}

// UpdateMember applies partial changes to a crew member
func (h *CrewHandler) UpdateMember(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	memberID, ok := h.parseUUIDParam(c, "member_id")
	if !ok {
		return
	}

	var req crewapp.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.crewService.UpdateMember(c.Request.Context(), tenantID, memberID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveMember removes a worker from a crew
func (h *CrewHandler) RemoveMember(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	memberID, ok := h.parseUUIDParam(c, "member_id")
	if !ok {
		return
	}

	if err := h.crewService.RemoveMember(c.Request.Context(), tenantID, memberID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AssignToProject schedules a crew onto a project
func (h *CrewHandler) AssignToProject(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req crewapp.AssignCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.crewService.AssignToProject(c.Request.Context(), tenantID, projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListProjectCrews lists the crews scheduled on a project
func (h *CrewHandler) ListProjectCrews(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	assignments, err := h.crewService.ListProjectCrews(c.Request.Context(), tenantID, projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, assignments)
}

// UnassignFromProject takes a crew off a project
func (h *CrewHandler) UnassignFromProject(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	assignmentID, ok := h.parseUUIDParam(c, "assignment_id")
	if !ok {
		return
	}

	if err := h.crewService.UnassignFromProject(c.Request.Context(), tenantID, assignmentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
