package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// TenantOwned is implemented by every business-owned record. The scoped
// repository relies on it to force the owning business onto writes.
type TenantOwned interface {
	GetTenantID() uuid.UUID
	SetTenantID(id uuid.UUID)
}

// TenantAggregateRoot extends BaseAggregateRoot with business (tenant)
// ownership and audit metadata. TenantID is set at creation and never
// changes afterwards.
type TenantAggregateRoot struct {
	BaseAggregateRoot
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
}

// NewTenantAggregateRoot creates a new business-scoped aggregate root
func NewTenantAggregateRoot(tenantID uuid.UUID) TenantAggregateRoot {
	return TenantAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		TenantID:          tenantID,
	}
}

// GetTenantID returns the owning business ID
func (t *TenantAggregateRoot) GetTenantID() uuid.UUID {
	return t.TenantID
}

// SetTenantID overwrites the owning business ID. Only the scoped mutation
// engine calls this; caller-supplied values are never trusted.
func (t *TenantAggregateRoot) SetTenantID(id uuid.UUID) {
	t.TenantID = id
}

// Audit exposes the audit fields backed by the embedded entity timestamps.
func (t *TenantAggregateRoot) Audit() *AuditFields {
	return &AuditFields{
		CreatedAt: t.CreatedAt,
		CreatedBy: t.CreatedBy,
		UpdatedAt: t.UpdatedAt,
		UpdatedBy: t.UpdatedBy,
	}
}

// StampCreated applies creation audit metadata to the aggregate.
func (t *TenantAggregateRoot) StampCreated(userID uuid.UUID) {
	a := AuditFields{}
	ApplyCreated(&a, userID)
	t.CreatedAt = a.CreatedAt
	t.UpdatedAt = a.UpdatedAt
	t.CreatedBy = a.CreatedBy
	t.UpdatedBy = a.UpdatedBy
}

// StampUpdated applies update audit metadata to the aggregate.
func (t *TenantAggregateRoot) StampUpdated(userID uuid.UUID) {
	a := AuditFields{CreatedAt: t.CreatedAt, CreatedBy: t.CreatedBy, UpdatedAt: t.UpdatedAt, UpdatedBy: t.UpdatedBy}
	ApplyUpdated(&a, userID)
	t.UpdatedAt = a.UpdatedAt
	t.UpdatedBy = a.UpdatedBy
}

// Touch updates the modification timestamp without actor information.
func (t *TenantAggregateRoot) Touch() {
	t.UpdatedAt = time.Now()
}
