package notification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// Kind categorizes a notification for preference filtering
type Kind string

const (
	KindInvoiceSent    Kind = "invoice_sent"
	KindIssueOpened    Kind = "issue_opened"
	KindMilestoneDue   Kind = "milestone_due"
	KindEquipmentAlert Kind = "equipment_alert"
	KindBilling        Kind = "billing"
)

// Notification is an in-app notification row; delivery to email/push is
// performed by the dispatcher and recorded on the row.
type Notification struct {
	shared.TenantAggregateRoot
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind        Kind      `gorm:"type:varchar(30);not null"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Body        string    `gorm:"type:text"`
	ReadAt      *time.Time
	EmailedAt   *time.Time
	PushedAt    *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a notification for a user
func NewNotification(tenantID, userID uuid.UUID, kind Kind, title, body string) (*Notification, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Notification requires a recipient")
	}
	return &Notification{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Kind:                kind,
		Title:               title,
		Body:                body,
	}, nil
}

// MarkRead stamps the read time once
func (n *Notification) MarkRead() {
	if n.ReadAt == nil {
		now := time.Now()
		n.ReadAt = &now
		n.UpdatedAt = now
	}
}

// RecordEmailed stamps successful email delivery
func (n *Notification) RecordEmailed() {
	now := time.Now()
	n.EmailedAt = &now
	n.UpdatedAt = now
}

// RecordPushed stamps successful push delivery
func (n *Notification) RecordPushed() {
	now := time.Now()
	n.PushedAt = &now
	n.UpdatedAt = now
}

// Preference controls which channels a user wants for each kind.
type Preference struct {
	shared.TenantAggregateRoot
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pref_user_kind,priority:1"`
	Kind         Kind      `gorm:"type:varchar(30);not null;uniqueIndex:idx_pref_user_kind,priority:2"`
	EmailEnabled bool      `gorm:"not null;default:true"`
	PushEnabled  bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Preference) TableName() string {
	return "notification_preferences"
}

// NewPreference creates a channel preference for a user and kind
func NewPreference(tenantID, userID uuid.UUID, kind Kind, email, push bool) (*Preference, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Preference requires a user")
	}
	return &Preference{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Kind:                kind,
		EmailEnabled:        email,
		PushEnabled:         push,
	}, nil
}

// PushSubscription is a browser push endpoint registered by a user.
type PushSubscription struct {
	shared.TenantAggregateRoot
	UserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Endpoint string    `gorm:"type:varchar(1000);not null;uniqueIndex"`
	P256dh   string    `gorm:"type:varchar(200)"`
	AuthKey  string    `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (PushSubscription) TableName() string {
	return "push_subscriptions"
}

// NewPushSubscription registers a push endpoint for a user
func NewPushSubscription(tenantID, userID uuid.UUID, endpoint, p256dh, authKey string) (*PushSubscription, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Subscription requires a user")
	}
	if !strings.HasPrefix(endpoint, "https://") {
		return nil, shared.NewDomainError("INVALID_ENDPOINT", "Push endpoint must be an https URL")
	}
	return &PushSubscription{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Endpoint:            endpoint,
		P256dh:              p256dh,
		AuthKey:             authKey,
	}, nil
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	shared.TenantRepository[Notification]

	// FindByUser lists a user's notifications, newest first
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]Notification, error)

	// CountUnread counts unread notifications for a user
	CountUnread(ctx context.Context, tenantID, userID uuid.UUID) (int64, error)
}

// PreferenceRepository defines the interface for preference persistence
type PreferenceRepository interface {
	shared.TenantRepository[Preference]

	// FindByUser lists all preferences of a user
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]Preference, error)

	// FindByUserAndKind returns the preference row for one kind,
	// ErrNotFound when the user never customized it.
	FindByUserAndKind(ctx context.Context, tenantID, userID uuid.UUID, kind Kind) (*Preference, error)
}

// PushSubscriptionRepository defines the interface for push endpoints
type PushSubscriptionRepository interface {
	shared.TenantRepository[PushSubscription]

	// FindByUser lists push endpoints registered by a user
	FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]PushSubscription, error)
}
