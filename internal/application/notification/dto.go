package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/notification"
)

// NotificationListFilter holds query parameters for listing notifications
type NotificationListFilter struct {
	Page     int  `form:"page"`
	PageSize int  `form:"page_size"`
	Unread   bool `form:"unread"`
}

// NotificationResponse is the API representation of a Notification
type NotificationResponse struct {
	ID        uuid.UUID         `json:"id"`
	Kind      notification.Kind `json:"kind"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToNotificationResponse converts a Notification to a NotificationResponse
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      n.Kind,
		Title:     n.Title,
		Body:      n.Body,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of Notifications
func ToNotificationResponses(rows []notification.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(rows))
	for i := range rows {
		responses[i] = ToNotificationResponse(&rows[i])
	}
	return responses
}

// UpdatePreferenceRequest sets the channels a user wants for one kind
type UpdatePreferenceRequest struct {
	Kind         notification.Kind `json:"kind" binding:"required,oneof=invoice_sent issue_opened milestone_due equipment_alert billing"`
	EmailEnabled bool              `json:"email_enabled"`
	PushEnabled  bool              `json:"push_enabled"`
}

// PreferenceResponse is the API representation of a Preference
type PreferenceResponse struct {
	Kind         notification.Kind `json:"kind"`
	EmailEnabled bool              `json:"email_enabled"`
	PushEnabled  bool              `json:"push_enabled"`
}

// ToPreferenceResponse converts a Preference to a PreferenceResponse
func ToPreferenceResponse(p *notification.Preference) PreferenceResponse {
	return PreferenceResponse{
		Kind:         p.Kind,
		EmailEnabled: p.EmailEnabled,
		PushEnabled:  p.PushEnabled,
	}
}

// ToPreferenceResponses converts a slice of Preferences
func ToPreferenceResponses(prefs []notification.Preference) []PreferenceResponse {
	responses := make([]PreferenceResponse, len(prefs))
	for i := range prefs {
		responses[i] = ToPreferenceResponse(&prefs[i])
	}
	return responses
}

// RegisterPushRequest registers a browser push endpoint
type RegisterPushRequest struct {
	Endpoint string `json:"endpoint" binding:"required,max=1000"`
	P256dh   string `json:"p256dh" binding:"omitempty,max=200"`
	AuthKey  string `json:"auth_key" binding:"omitempty,max=200"`
}

// PushSubscriptionResponse is the API representation of a PushSubscription
type PushSubscriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPushSubscriptionResponse converts a PushSubscription
func ToPushSubscriptionResponse(s *notification.PushSubscription) PushSubscriptionResponse {
	return PushSubscriptionResponse{
		ID:        s.ID,
		Endpoint:  s.Endpoint,
		CreatedAt: s.CreatedAt,
	}
}

// ToPushSubscriptionResponses converts a slice of PushSubscriptions
func ToPushSubscriptionResponses(subs []notification.PushSubscription) []PushSubscriptionResponse {
	responses := make([]PushSubscriptionResponse, len(subs))
	for i := range subs {
		responses[i] = ToPushSubscriptionResponse(&subs[i])
	}
	return responses
}
