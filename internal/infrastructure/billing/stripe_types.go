package billing

import (
	"time"

	"github.com/google/uuid"

	domainbilling "github.com/jobsight/backend/internal/domain/billing"
)

// CreateCustomerInput contains input for creating a Stripe customer
type CreateCustomerInput struct {
	TenantID uuid.UUID
	Email    string
	Name     string
	Phone    string
}

// CreateCustomerOutput contains the result of creating a Stripe customer
type CreateCustomerOutput struct {
	CustomerID string
	Email      string
	Name       string
	CreatedAt  time.Time
}

// CreateCheckoutSessionInput contains input for starting a subscription checkout
type CreateCheckoutSessionInput struct {
	TenantID   uuid.UUID
	CustomerID string // Stripe customer ID
	Plan       string // Internal plan name (starter, pro)
	TrialDays  int    // Number of trial days (0 = no trial)
}

// CreateCheckoutSessionOutput contains the hosted checkout page to redirect to
type CreateCheckoutSessionOutput struct {
	SessionID string
	URL       string
}

// CreatePortalSessionInput contains input for opening the Stripe billing portal
type CreatePortalSessionInput struct {
	TenantID   uuid.UUID
	CustomerID string
}

// CreatePortalSessionOutput contains the hosted portal page to redirect to
type CreatePortalSessionOutput struct {
	URL string
}

// CancelSubscriptionInput contains input for canceling a Stripe subscription
type CancelSubscriptionInput struct {
	TenantID       uuid.UUID
	SubscriptionID string
	AtPeriodEnd    bool // If true, cancel at end of billing period; if false, cancel immediately
}

// SubscriptionState is the provider-side view of a subscription, already
// translated into the domain's status vocabulary
type SubscriptionState struct {
	SubscriptionID    string
	CustomerID        string
	Status            domainbilling.SubscriptionStatus
	PriceID           string
	Plan              string // Internal plan name carried in subscription metadata
	TenantID          string // Tenant ID carried in subscription metadata
	CurrentPeriodEnd  *time.Time
	TrialEnd          *time.Time
	CancelAtPeriodEnd bool
}
