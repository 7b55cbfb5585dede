package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// SubscriptionStatus mirrors the payment provider's subscription status
type SubscriptionStatus string

const (
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// Subscription is the local mirror of a business's Stripe subscription.
// It is written only by webhook processing and onboarding; the rest of
// the application treats it as read-only.
type Subscription struct {
	shared.TenantAggregateRoot
	StripeSubscriptionID string             `gorm:"type:varchar(100);not null;uniqueIndex"`
	StripePriceID        string             `gorm:"type:varchar(100)"`
	Plan                 string             `gorm:"type:varchar(20);not null"`
	Status               SubscriptionStatus `gorm:"type:varchar(20);not null"`
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription mirrors a provider subscription locally
func NewSubscription(tenantID uuid.UUID, stripeSubID, plan string, status SubscriptionStatus) (*Subscription, error) {
	if stripeSubID == "" {
		return nil, shared.NewDomainError("INVALID_SUBSCRIPTION", "Provider subscription ID is required")
	}
	return &Subscription{
		TenantAggregateRoot:  shared.NewTenantAggregateRoot(tenantID),
		StripeSubscriptionID: stripeSubID,
		Plan:                 plan,
		Status:               status,
	}, nil
}

// Sync applies the provider's current state to the mirror
func (s *Subscription) Sync(status SubscriptionStatus, priceID string, periodEnd *time.Time, cancelAtPeriodEnd bool) {
	s.Status = status
	s.StripePriceID = priceID
	s.CurrentPeriodEnd = periodEnd
	s.CancelAtPeriodEnd = cancelAtPeriodEnd
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// IsUsable reports whether the subscription entitles the business to service
func (s *Subscription) IsUsable() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusTrialing
}

// SubscriptionRepository defines the interface for subscription mirrors
type SubscriptionRepository interface {
	// FindForTenant returns the business's subscription, ErrNotFound if none
	FindForTenant(ctx context.Context, tenantID uuid.UUID) (*Subscription, error)

	// FindByStripeID resolves a mirror row from the provider's ID
	FindByStripeID(ctx context.Context, stripeSubID string) (*Subscription, error)

	// Save creates or updates a mirror row
	Save(ctx context.Context, sub *Subscription) error
}
