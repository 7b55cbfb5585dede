package billing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/billing"
	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/shared"
	infrabilling "github.com/jobsight/backend/internal/infrastructure/billing"
)

// PaymentGateway is the slice of the payment provider the subscription
// service needs. Satisfied by the Stripe adapter.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, input infrabilling.CreateCustomerInput) (*infrabilling.CreateCustomerOutput, error)
	CreateCheckoutSession(ctx context.Context, input infrabilling.CreateCheckoutSessionInput) (*infrabilling.CreateCheckoutSessionOutput, error)
	CreatePortalSession(ctx context.Context, input infrabilling.CreatePortalSessionInput) (*infrabilling.CreatePortalSessionOutput, error)
	CancelSubscription(ctx context.Context, input infrabilling.CancelSubscriptionInput) (*infrabilling.SubscriptionState, error)
}

// SubscriptionService handles checkout, the billing portal and cancellation.
// The local subscription row is a mirror; the provider holds the truth and
// webhook processing keeps the mirror in sync.
type SubscriptionService struct {
	businessRepo     identity.BusinessRepository
	subscriptionRepo billing.SubscriptionRepository
	gateway          PaymentGateway
	trialDays        int
	logger           *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(
	businessRepo identity.BusinessRepository,
	subscriptionRepo billing.SubscriptionRepository,
	gateway PaymentGateway,
	trialDays int,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		businessRepo:     businessRepo,
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		trialDays:        trialDays,
		logger:           logger,
	}
}

// StartCheckout opens a hosted checkout session for a paid plan. A provider
// customer is created lazily on first checkout and linked to the business.
func (s *SubscriptionService) StartCheckout(ctx context.Context, tenantID uuid.UUID, req StartCheckoutRequest) (*CheckoutResponse, error) {
	b, err := s.businessRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if b.StripeCustomerID == "" {
		customer, err := s.gateway.CreateCustomer(ctx, infrabilling.CreateCustomerInput{
			TenantID: b.ID,
			Name:     b.Name,
			Email:    b.ContactEmail,
		})
		if err != nil {
			return nil, err
		}
		b.SetStripeCustomerID(customer.CustomerID)
		if err := s.businessRepo.Save(ctx, b); err != nil {
			return nil, err
		}
		s.logger.Info("linked payment customer",
			zap.String("tenant_id", b.ID.String()),
			zap.String("customer_id", customer.CustomerID))
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, infrabilling.CreateCheckoutSessionInput{
		TenantID:   b.ID,
		CustomerID: b.StripeCustomerID,
		Plan:       req.Plan,
		TrialDays:  s.trialDays,
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResponse{SessionID: session.SessionID, URL: session.URL}, nil
}

// PortalSession opens the hosted billing portal for an existing customer
func (s *SubscriptionService) PortalSession(ctx context.Context, tenantID uuid.UUID) (*PortalResponse, error) {
	b, err := s.businessRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if b.StripeCustomerID == "" {
		return nil, shared.NewDomainError("NO_CUSTOMER", "Business has no payment customer yet")
	}

	session, err := s.gateway.CreatePortalSession(ctx, infrabilling.CreatePortalSessionInput{
		CustomerID: b.StripeCustomerID,
	})
	if err != nil {
		return nil, err
	}

	return &PortalResponse{URL: session.URL}, nil
}

// GetCurrent returns the business's subscription mirror. A business that
// never checked out reads as a free plan with no subscription row.
func (s *SubscriptionService) GetCurrent(ctx context.Context, tenantID uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	response := ToSubscriptionResponse(sub)
	return &response, nil
}

// Cancel cancels the business's subscription at the provider and syncs the
// mirror with the returned state.
func (s *SubscriptionService) Cancel(ctx context.Context, tenantID uuid.UUID, req CancelSubscriptionRequest) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	state, err := s.gateway.CancelSubscription(ctx, infrabilling.CancelSubscriptionInput{
		TenantID:       tenantID,
		SubscriptionID: sub.StripeSubscriptionID,
		AtPeriodEnd:    req.AtPeriodEnd,
	})
	if err != nil {
		return nil, err
	}

	sub.Sync(state.Status, state.PriceID, state.CurrentPeriodEnd, state.CancelAtPeriodEnd)
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("subscription canceled",
		zap.String("tenant_id", tenantID.String()),
		zap.Bool("at_period_end", req.AtPeriodEnd))

	response := ToSubscriptionResponse(sub)
	return &response, nil
}
