package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v81"
	portalsession "github.com/stripe/stripe-go/v81/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/customer"
	"github.com/stripe/stripe-go/v81/subscription"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"

	domainbilling "github.com/jobsight/backend/internal/domain/billing"
	"github.com/jobsight/backend/internal/infrastructure/config"
)

// StripeAdapter implements Stripe billing operations: customers, hosted
// checkout and portal sessions, subscription state, webhook verification
type StripeAdapter struct {
	config config.StripeConfig
	logger *zap.Logger
}

// NewStripeAdapter creates a new Stripe adapter and sets the global API key
func NewStripeAdapter(cfg config.StripeConfig, logger *zap.Logger) (*StripeAdapter, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	if !strings.HasPrefix(cfg.SecretKey, "sk_") {
		return nil, fmt.Errorf("stripe: secret key does not look like a secret key")
	}
	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("stripe: webhook secret is required")
	}

	stripe.Key = cfg.SecretKey

	return &StripeAdapter{
		config: cfg,
		logger: logger,
	}, nil
}

// PriceForPlan returns the configured Stripe Price ID for an internal plan name
func (a *StripeAdapter) PriceForPlan(plan string) (string, error) {
	switch plan {
	case "starter":
		if a.config.StarterPriceID == "" {
			return "", fmt.Errorf("stripe: price ID not set for plan: starter")
		}
		return a.config.StarterPriceID, nil
	case "pro":
		if a.config.ProPriceID == "" {
			return "", fmt.Errorf("stripe: price ID not set for plan: pro")
		}
		return a.config.ProPriceID, nil
	case "free":
		return "", fmt.Errorf("stripe: the free plan has no checkout")
	default:
		return "", fmt.Errorf("stripe: no price ID configured for plan: %s", plan)
	}
}

// CreateCustomer creates a new customer in Stripe
func (a *StripeAdapter) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CreateCustomerOutput, error) {
	a.logger.Debug("Creating Stripe customer",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("email", input.Email))

	params := &stripe.CustomerParams{
		Email: stripe.String(input.Email),
		Name:  stripe.String(input.Name),
	}
	params.Context = ctx

	if input.Phone != "" {
		params.Phone = stripe.String(input.Phone)
	}

	params.Metadata = map[string]string{
		"tenant_id": input.TenantID.String(),
	}

	cust, err := customer.New(params)
	if err != nil {
		a.logger.Error("Failed to create Stripe customer",
			zap.String("tenant_id", input.TenantID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create customer: %w", err)
	}

	a.logger.Info("Created Stripe customer",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("customer_id", cust.ID))

	return &CreateCustomerOutput{
		CustomerID: cust.ID,
		Email:      cust.Email,
		Name:       cust.Name,
		CreatedAt:  time.Unix(cust.Created, 0),
	}, nil
}

// CreateCheckoutSession creates a hosted checkout session for a paid plan.
// The tenant and plan travel as subscription metadata so webhook processing
// can attribute the subscription without a lookup.
func (a *StripeAdapter) CreateCheckoutSession(ctx context.Context, input CreateCheckoutSessionInput) (*CreateCheckoutSessionOutput, error) {
	priceID, err := a.PriceForPlan(input.Plan)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("Creating Stripe checkout session",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("plan", input.Plan),
		zap.String("price_id", priceID))

	metadata := map[string]string{
		"tenant_id": input.TenantID.String(),
		"plan":      input.Plan,
	}

	params := &stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(input.CustomerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(a.config.CheckoutOK),
		CancelURL:  stripe.String(a.config.CheckoutCancel),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
		Metadata: metadata,
	}
	params.Context = ctx

	if input.TrialDays > 0 {
		params.SubscriptionData.TrialPeriodDays = stripe.Int64(int64(input.TrialDays))
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		a.logger.Error("Failed to create Stripe checkout session",
			zap.String("tenant_id", input.TenantID.String()),
			zap.String("plan", input.Plan),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	a.logger.Info("Created Stripe checkout session",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("session_id", sess.ID))

	return &CreateCheckoutSessionOutput{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

// CreatePortalSession creates a hosted billing-portal session for self-serve
// payment method and plan management
func (a *StripeAdapter) CreatePortalSession(ctx context.Context, input CreatePortalSessionInput) (*CreatePortalSessionOutput, error) {
	a.logger.Debug("Creating Stripe billing portal session",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("customer_id", input.CustomerID))

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(input.CustomerID),
		ReturnURL: stripe.String(a.config.PortalReturn),
	}
	params.Context = ctx

	sess, err := portalsession.New(params)
	if err != nil {
		a.logger.Error("Failed to create Stripe billing portal session",
			zap.String("tenant_id", input.TenantID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create billing portal session: %w", err)
	}

	return &CreatePortalSessionOutput{URL: sess.URL}, nil
}

// GetSubscription retrieves the current subscription state from Stripe
func (a *StripeAdapter) GetSubscription(ctx context.Context, subscriptionID string) (*SubscriptionState, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := subscription.Get(subscriptionID, params)
	if err != nil {
		a.logger.Error("Failed to get Stripe subscription",
			zap.String("subscription_id", subscriptionID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to get subscription: %w", err)
	}

	return subscriptionState(sub), nil
}

// CancelSubscription cancels a subscription, either at period end or immediately
func (a *StripeAdapter) CancelSubscription(ctx context.Context, input CancelSubscriptionInput) (*SubscriptionState, error) {
	a.logger.Debug("Canceling Stripe subscription",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("subscription_id", input.SubscriptionID),
		zap.Bool("at_period_end", input.AtPeriodEnd))

	var sub *stripe.Subscription
	var err error

	if input.AtPeriodEnd {
		params := &stripe.SubscriptionParams{
			CancelAtPeriodEnd: stripe.Bool(true),
		}
		params.Context = ctx
		sub, err = subscription.Update(input.SubscriptionID, params)
	} else {
		params := &stripe.SubscriptionCancelParams{}
		params.Context = ctx
		sub, err = subscription.Cancel(input.SubscriptionID, params)
	}

	if err != nil {
		a.logger.Error("Failed to cancel Stripe subscription",
			zap.String("tenant_id", input.TenantID.String()),
			zap.String("subscription_id", input.SubscriptionID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to cancel subscription: %w", err)
	}

	a.logger.Info("Canceled Stripe subscription",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("subscription_id", sub.ID),
		zap.String("status", string(sub.Status)))

	return subscriptionState(sub), nil
}

// VerifyWebhook verifies the webhook signature and returns the parsed event.
// An invalid signature is a hard error; the caller must reject the request.
func (a *StripeAdapter) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	// Stripe pins event payloads to the account's API version, which lags
	// the SDK's; only the signature matters here.
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, a.config.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		a.logger.Warn("Rejected Stripe webhook with invalid signature", zap.Error(err))
		return stripe.Event{}, fmt.Errorf("stripe: webhook signature verification failed: %w", err)
	}
	return event, nil
}

// SubscriptionStateFromEvent unmarshals a subscription lifecycle event's
// payload into a SubscriptionState
func SubscriptionStateFromEvent(event stripe.Event) (*SubscriptionState, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, fmt.Errorf("stripe: failed to parse subscription from event %s: %w", event.ID, err)
	}
	return subscriptionState(&sub), nil
}

func subscriptionState(sub *stripe.Subscription) *SubscriptionState {
	state := &SubscriptionState{
		SubscriptionID:    sub.ID,
		Status:            MapSubscriptionStatus(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		Plan:              sub.Metadata["plan"],
		TenantID:          sub.Metadata["tenant_id"],
	}

	if sub.Customer != nil {
		state.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		state.PriceID = sub.Items.Data[0].Price.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		t := time.Unix(sub.CurrentPeriodEnd, 0)
		state.CurrentPeriodEnd = &t
	}
	if sub.TrialEnd > 0 {
		t := time.Unix(sub.TrialEnd, 0)
		state.TrialEnd = &t
	}

	return state
}

// MapSubscriptionStatus maps Stripe's subscription status to the domain's
// coarser vocabulary. Incomplete and unpaid states count as past due until
// Stripe resolves them one way or the other.
func MapSubscriptionStatus(status stripe.SubscriptionStatus) domainbilling.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusActive:
		return domainbilling.SubscriptionStatusActive
	case stripe.SubscriptionStatusTrialing:
		return domainbilling.SubscriptionStatusTrialing
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusIncomplete, stripe.SubscriptionStatusUnpaid:
		return domainbilling.SubscriptionStatusPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusIncompleteExpired:
		return domainbilling.SubscriptionStatusCanceled
	default:
		return domainbilling.SubscriptionStatusPastDue
	}
}
