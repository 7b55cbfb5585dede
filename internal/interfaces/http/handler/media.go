package handler

import (
	"github.com/gin-gonic/gin"

	mediaapp "github.com/jobsight/backend/internal/application/media"
)

// MediaHandler handles document and photo/video metadata endpoints. Binary
// payloads are uploaded to object storage out of band; these endpoints
// manage the records.
type MediaHandler struct {
	BaseHandler
	documentService *mediaapp.DocumentService
	mediaService    *mediaapp.MediaItemService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(
	documentService *mediaapp.DocumentService,
	mediaService *mediaapp.MediaItemService,
) *MediaHandler {
	return &MediaHandler{
		documentService: documentService,
		mediaService:    mediaService,
	}
}

// CreateDocument registers an uploaded document
func (h *MediaHandler) CreateDocument(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req mediaapp.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.documentService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListDocuments retrieves documents with filtering and pagination
func (h *MediaHandler) ListDocuments(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter mediaapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	documents, total, err := h.documentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, documents, filter.Page, filter.PageSize, total)
}

// GetDocument retrieves a document record by ID
func (h *MediaHandler) GetDocument(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	documentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.documentService.GetByID(c.Request.Context(), tenantID, documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListProjectDocuments lists documents attached to a project
func (h *MediaHandler) ListProjectDocuments(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	documents, err := h.documentService.ListByProject(c.Request.Context(), tenantID, projectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, documents)
}

// DeleteDocument removes a document record
func (h *MediaHandler) DeleteDocument(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	documentID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), tenantID, documentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateMediaItem registers an uploaded photo or video
func (h *MediaHandler) CreateMediaItem(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req mediaapp.CreateMediaItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.mediaService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetMediaItem retrieves a media record by ID
func (h *MediaHandler) GetMediaItem(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	mediaID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.mediaService.GetByID(c.Request.Context(), tenantID, mediaID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListProjectMedia lists photos and videos captured on a project
func (h *MediaHandler) ListProjectMedia(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var filter mediaapp.MediaItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	items, err := h.mediaService.ListByProject(c.Request.Context(), tenantID, projectID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// ListDailyLogMedia lists photos and videos attached to a daily log
func (h *MediaHandler) ListDailyLogMedia(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	logID, ok := h.parseUUIDParam(c, "log_id")
	if !ok {
		return
	}

	items, err := h.mediaService.ListByDailyLog(c.Request.Context(), tenantID, logID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// UpdateMediaItem updates a media record's caption
func (h *MediaHandler) UpdateMediaItem(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	mediaID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req mediaapp.UpdateMediaItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.mediaService.UpdateCaption(c.Request.Context(), tenantID, mediaID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteMediaItem removes a media record
func (h *MediaHandler) DeleteMediaItem(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	mediaID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), tenantID, mediaID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
