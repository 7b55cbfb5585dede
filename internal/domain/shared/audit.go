package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditFields carries actor/timestamp metadata for tenant-owned records.
// Embedded into TenantAggregateRoot; stamped by the application layer
// immediately before persistence, never by callers.
type AuditFields struct {
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index" json:"created_by,omitempty"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
}

// Auditable is implemented by anything carrying audit fields.
type Auditable interface {
	Audit() *AuditFields
}

// Audit returns the audit fields for stamping.
func (a *AuditFields) Audit() *AuditFields {
	return a
}

// ApplyCreated stamps creation metadata. created_at/created_by are mirrored
// into updated_at/updated_by so a freshly created record reads as "last
// touched at creation". Call exactly once, immediately before insert.
func ApplyCreated(a *AuditFields, userID uuid.UUID) {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if userID != uuid.Nil {
		id := userID
		a.CreatedBy = &id
		a.UpdatedBy = &id
	}
}

// ApplyUpdated restamps update metadata, leaving created_* untouched.
// Call exactly once, immediately before update.
func ApplyUpdated(a *AuditFields, userID uuid.UUID) {
	a.UpdatedAt = time.Now()
	if userID != uuid.Nil {
		id := userID
		a.UpdatedBy = &id
	}
}

// AuditStamper is implemented by records that accept audit stamping. The
// scoped mutation engine stamps every insert and update through it.
type AuditStamper interface {
	StampCreated(userID uuid.UUID)
	StampUpdated(userID uuid.UUID)
}

type actorKey struct{}

// WithActor returns a context carrying the authenticated caller's id, the
// source of created_by/updated_by on every write within the request.
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFromContext returns the caller id for audit stamping, or uuid.Nil
// when the write happens outside an authenticated request.
func ActorFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(actorKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
