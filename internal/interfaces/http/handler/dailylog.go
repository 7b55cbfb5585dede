package handler

import (
	"github.com/gin-gonic/gin"

	fieldlogapp "github.com/jobsight/backend/internal/application/fieldlog"
)

// DailyLogHandler handles field daily log endpoints
type DailyLogHandler struct {
	BaseHandler
	logService *fieldlogapp.DailyLogService
}

// NewDailyLogHandler creates a new DailyLogHandler
func NewDailyLogHandler(logService *fieldlogapp.DailyLogService) *DailyLogHandler {
	return &DailyLogHandler{logService: logService}
}

// Create files a daily log for a project
func (h *DailyLogHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req fieldlogapp.CreateDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.logService.Create(c.Request.Context(), tenantID, projectID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByProject lists a project's daily logs, newest first
func (h *DailyLogHandler) ListByProject(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var filter fieldlogapp.DailyLogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	logs, err := h.logService.ListByProject(c.Request.Context(), tenantID, projectID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, logs)
}

// Get retrieves a daily log with its equipment and material usage rows
func (h *DailyLogHandler) Get(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	logID, ok := h.parseUUIDParam(c, "log_id")
	if !ok {
		return
	}

	resp, err := h.logService.Get(c.Request.Context(), tenantID, logID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies partial changes to a daily log
func (h *DailyLogHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	logID, ok := h.parseUUIDParam(c, "log_id")
	if !ok {
		return
	}

	var req fieldlogapp.UpdateDailyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.logService.Update(c.Request.Context(), tenantID, logID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a daily log
func (h *DailyLogHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	logID, ok := h.parseUUIDParam(c, "log_id")
	if !ok {
		return
	}

	if err := h.logService.Delete(c.Request.Context(), tenantID, logID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AddEquipmentUsage records equipment hours against a daily log
func (h *DailyLogHandler) AddEquipmentUsage(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	logID, ok := h.parseUUIDParam(c, "log_id")
	if !ok {
		return
	}

	var req fieldlogapp.AddEquipmentUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.logService.AddEquipmentUsage(c.Request.Context(), tenantID, logID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// AddMaterialUsage records material consumption against a daily log
func (h *DailyLogHandler) AddMaterialUsage(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	logID, ok := h.parseUUIDParam(c, "log_id")
	if !ok {
		return
	}

	var req fieldlogapp.AddMaterialUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.logService.AddMaterialUsage(c.Request.Context(), tenantID, logID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// RemoveEquipmentUsage deletes an equipment usage row
func (h *DailyLogHandler) RemoveEquipmentUsage(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	usageID, ok := h.parseUUIDParam(c, "usage_id")
	if !ok {
		return
	}

	if err := h.logService.RemoveEquipmentUsage(c.Request.Context(), tenantID, usageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RemoveMaterialUsage deletes a material usage row
func (h *DailyLogHandler) RemoveMaterialUsage(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	usageID, ok := h.parseUUIDParam(c, "usage_id")
	if !ok {
		return
	}

	if err := h.logService.RemoveMaterialUsage(c.Request.Context(), tenantID, usageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
