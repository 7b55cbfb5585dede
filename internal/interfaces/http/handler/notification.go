package handler

import (
	"github.com/gin-gonic/gin"

	notificationapp "github.com/jobsight/backend/internal/application/notification"
)

// NotificationHandler handles the in-app notification feed, channel
// preferences and push endpoint registration. Every endpoint operates on
// the authenticated user's own rows.
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.NotificationService
	preferenceService   *notificationapp.PreferenceService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notificationService *notificationapp.NotificationService,
	preferenceService *notificationapp.PreferenceService,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		preferenceService:   preferenceService,
	}
}

// List retrieves the caller's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var filter notificationapp.NotificationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	notifications, err := h.notificationService.ListByUser(c.Request.Context(), tenantID, userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, notifications)
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"unread": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	notificationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.notificationService.MarkRead(c.Request.Context(), tenantID, userID, notificationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a notification from the caller's feed
func (h *NotificationHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	notificationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), tenantID, userID, notificationID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPreferences lists the caller's customized channel preferences
func (h *NotificationHandler) ListPreferences(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	prefs, err := h.preferenceService.ListByUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, prefs)
}

// UpsertPreference creates or updates the preference for one kind
func (h *NotificationHandler) UpsertPreference(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req notificationapp.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.preferenceService.Upsert(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterPush registers a browser push endpoint for the caller
func (h *NotificationHandler) RegisterPush(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req notificationapp.RegisterPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.preferenceService.RegisterPush(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPush lists the caller's registered push endpoints
func (h *NotificationHandler) ListPush(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	subs, err := h.preferenceService.ListPush(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, subs)
}

// UnregisterPush removes a push endpoint
func (h *NotificationHandler) UnregisterPush(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	subscriptionID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.preferenceService.UnregisterPush(c.Request.Context(), tenantID, userID, subscriptionID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
