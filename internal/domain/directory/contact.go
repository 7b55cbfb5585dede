package directory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// ClientContact is a person at a client organization.
type ClientContact struct {
	shared.TenantAggregateRoot
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Title     string    `gorm:"type:varchar(100)"`
	Email     string    `gorm:"type:varchar(200)"`
	Phone     string    `gorm:"type:varchar(50)"`
	IsPrimary bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ClientContact) TableName() string {
	return "client_contacts"
}

// NewClientContact creates a contact under a client
func NewClientContact(tenantID, clientID uuid.UUID, name string) (*ClientContact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Contact requires a client")
	}
	return &ClientContact{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ClientID:            clientID,
		Name:                name,
	}, nil
}

// Update updates contact details
func (c *ClientContact) Update(name, title, email, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	c.Name = name
	c.Title = title
	c.Email = strings.ToLower(email)
	c.Phone = phone
	c.UpdatedAt = time.Now()
	return nil
}

// MarkPrimary flags this contact as the primary one for its client
func (c *ClientContact) MarkPrimary() {
	c.IsPrimary = true
	c.UpdatedAt = time.Now()
}

// InteractionKind categorizes a logged client interaction
type InteractionKind string

const (
	InteractionKindCall    InteractionKind = "call"
	InteractionKindEmail   InteractionKind = "email"
	InteractionKindMeeting InteractionKind = "meeting"
	InteractionKindSite    InteractionKind = "site_visit"
	InteractionKindOther   InteractionKind = "other"
)

// ClientInteraction is a logged touchpoint with a client.
type ClientInteraction struct {
	shared.TenantAggregateRoot
	ClientID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind       InteractionKind `gorm:"type:varchar(20);not null;default:'other'"`
	Summary    string          `gorm:"type:varchar(500);not null"`
	Details    string          `gorm:"type:text"`
	OccurredAt time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ClientInteraction) TableName() string {
	return "client_interactions"
}

// NewClientInteraction logs an interaction with a client
func NewClientInteraction(tenantID, clientID uuid.UUID, kind InteractionKind, summary string, occurredAt time.Time) (*ClientInteraction, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Interaction requires a client")
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, shared.NewDomainError("INVALID_SUMMARY", "Interaction summary cannot be empty")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	return &ClientInteraction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ClientID:            clientID,
		Kind:                kind,
		Summary:             summary,
		OccurredAt:          occurredAt,
	}, nil
}

// ClientContactRepository defines the interface for contact persistence
type ClientContactRepository interface {
	shared.TenantRepository[ClientContact]

	// FindByClient lists contacts of one client, primary first
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]ClientContact, error)
}

// ClientInteractionRepository defines the interface for interaction persistence
type ClientInteractionRepository interface {
	shared.TenantRepository[ClientInteraction]

	// FindByClient lists interactions of one client, newest first
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]ClientInteraction, error)
}
