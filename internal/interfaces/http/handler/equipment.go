package handler

import (
	"github.com/gin-gonic/gin"

	equipmentapp "github.com/jobsight/backend/internal/application/equipment"
)

// EquipmentHandler handles the equipment register, assignments and
// maintenance history.
type EquipmentHandler struct {
	BaseHandler
	equipmentService  *equipmentapp.EquipmentService
	assignmentService *equipmentapp.AssignmentService
}

// NewEquipmentHandler creates a new EquipmentHandler
func NewEquipmentHandler(
	equipmentService *equipmentapp.EquipmentService,
	assignmentService *equipmentapp.AssignmentService,
) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService:  equipmentService,
		assignmentService: assignmentService,
	}
}

// Create registers a new piece of equipment
func (h *EquipmentHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req equipmentapp.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.equipmentService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List retrieves equipment with filtering and pagination
func (h *EquipmentHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter equipmentapp.EquipmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	items, total, err := h.equipmentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, filter.Page, filter.PageSize, total)
}

// GetByID retrieves equipment by ID
func (h *EquipmentHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.equipmentService.GetByID(c.Request.Context(), tenantID, equipmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies partial changes to equipment
func (h *EquipmentHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req equipmentapp.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.equipmentService.Update(c.Request.Context(), tenantID, equipmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Transition moves equipment to a new status
func (h *EquipmentHandler) Transition(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req equipmentapp.TransitionEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.equipmentService.Transition(c.Request.Context(), tenantID, equipmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes equipment from the register
func (h *EquipmentHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.equipmentService.Delete(c.Request.Context(), tenantID, equipmentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AddSpecification records a technical attribute of an equipment item
func (h *EquipmentHandler) AddSpecification(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req equipmentapp.SpecificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.equipmentService.AddSpecification(c.Request.Context(), tenantID, equipmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListSpecifications lists the specifications of an equipment item
func (h *EquipmentHandler) ListSpecifications(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	specs, err := h.equipmentService.ListSpecifications(c.Request.Context(), tenantID, equipmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, specs)
}

// UpdateSpecification changes a specification's label and value
func (h *EquipmentHandler) UpdateSpecification(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	specID, ok := h.parseUUIDParam(c, "spec_id")
	if !ok {
		return
	}

	var req equipmentapp.SpecificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.equipmentService.UpdateSpecification(c.Request.Context(), tenantID, specID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveSpecification deletes a specification from an equipment item
func (h *EquipmentHandler) RemoveSpecification(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	specID, ok := h.parseUUIDParam(c, "spec_id")
	if !ok {
		return
	}

	if err := h.equipmentService.RemoveSpecification(c.Request.Context(), tenantID, specID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Assign lends equipment to a crew or project
func (h *EquipmentHandler) Assign(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req equipmentapp.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.assignmentService.Assign(c.Request.Context(), tenantID, equipmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Return closes an open assignment and makes the equipment available again
func (h *EquipmentHandler) Return(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	assignmentID, ok := h.parseUUIDParam(c, "assignment_id")
	if !ok {
		return
	}

	resp, err := h.assignmentService.Return(c.Request.Context(), tenantID, assignmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AssignmentHistory lists an equipment item's past and open assignments
func (h *EquipmentHandler) AssignmentHistory(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.History(c.Request.Context(), tenantID, equipmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, assignments)
}

// ListOpenAssignments lists all currently open assignments
func (h *EquipmentHandler) ListOpenAssignments(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter equipmentapp.AssignmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	assignments, err := h.assignmentService.ListOpen(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, assignments)
}

// LogMaintenance records a maintenance event for equipment
func (h *EquipmentHandler) LogMaintenance(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req equipmentapp.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.assignmentService.LogMaintenance(c.Request.Context(), tenantID, equipmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// MaintenanceHistory lists an equipment item's maintenance records
func (h *EquipmentHandler) MaintenanceHistory(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	equipmentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	records, err := h.assignmentService.MaintenanceHistory(c.Request.Context(), tenantID, equipmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, records)
}
