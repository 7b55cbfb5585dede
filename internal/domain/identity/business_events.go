package identity

import (
	"github.com/jobsight/backend/internal/domain/shared"
)

// Event types for the business aggregate
const (
	EventTypeBusinessCreated     = "identity.business.created"
	EventTypeBusinessPlanChanged = "identity.business.plan_changed"
)

// BusinessCreatedEvent is raised when a business completes onboarding
type BusinessCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
	Plan string `json:"plan"`
}

// NewBusinessCreatedEvent creates a BusinessCreatedEvent
func NewBusinessCreatedEvent(b *Business) *BusinessCreatedEvent {
	return &BusinessCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessCreated, "Business", b.ID, b.ID),
		Name:            b.Name,
		Plan:            string(b.Plan),
	}
}

// BusinessPlanChangedEvent is raised when a business switches plans
type BusinessPlanChangedEvent struct {
	shared.BaseDomainEvent
	Plan string `json:"plan"`
}

// NewBusinessPlanChangedEvent creates a BusinessPlanChangedEvent
func NewBusinessPlanChangedEvent(b *Business) *BusinessPlanChangedEvent {
	return &BusinessPlanChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBusinessPlanChanged, "Business", b.ID, b.ID),
		Plan:            string(b.Plan),
	}
}
