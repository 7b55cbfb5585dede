package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/billing"
	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/shared"
	infrabilling "github.com/jobsight/backend/internal/infrastructure/billing"
	"github.com/jobsight/backend/internal/infrastructure/events"
)

// webhookDedupTTL bounds how long processed event IDs are remembered.
// Stripe retries for up to three days.
const webhookDedupTTL = 72 * time.Hour

// WebhookVerifier checks a webhook payload's signature. Satisfied by the
// Stripe adapter.
type WebhookVerifier interface {
	VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error)
}

// WebhookService processes provider webhooks: it verifies the signature,
// deduplicates retried deliveries and syncs the local subscription mirror
// and the business plan.
type WebhookService struct {
	verifier         WebhookVerifier
	idempotency      shared.IdempotencyStore
	subscriptionRepo billing.SubscriptionRepository
	businessRepo     identity.BusinessRepository
	logger           *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(
	verifier WebhookVerifier,
	idempotency shared.IdempotencyStore,
	subscriptionRepo billing.SubscriptionRepository,
	businessRepo identity.BusinessRepository,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		verifier:         verifier,
		idempotency:      idempotency,
		subscriptionRepo: subscriptionRepo,
		businessRepo:     businessRepo,
		logger:           logger,
	}
}

// Process handles one webhook delivery. Replayed deliveries of an already
// processed event are acknowledged without effect.
func (s *WebhookService) Process(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.verifier.VerifyWebhook(payload, signatureHeader)
	if err != nil {
		return shared.NewDomainError("INVALID_SIGNATURE", "Webhook signature verification failed")
	}

	fresh, err := s.idempotency.MarkProcessed(ctx, event.ID, webhookDedupTTL)
	if err != nil {
		return err
	}
	if !fresh {
		s.logger.Debug("webhook replay ignored", zap.String("event_id", event.ID))
		return nil
	}

	if err := s.dispatch(ctx, event); err != nil {
		// Give the key back so the provider's retry is not swallowed by
		// the dedup check.
		if relErr := s.idempotency.Release(ctx, event.ID); relErr != nil {
			s.logger.Warn("failed to release webhook dedup key",
				zap.String("event_id", event.ID),
				zap.Error(relErr))
		}
		return err
	}
	return nil
}

func (s *WebhookService) dispatch(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		return s.handleSubscriptionEvent(ctx, event)
	default:
		s.logger.Debug("webhook event ignored",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return nil
	}
}

func (s *WebhookService) handleSubscriptionEvent(ctx context.Context, event stripe.Event) error {
	state, err := infrabilling.SubscriptionStateFromEvent(event)
	if err != nil {
		return err
	}
	if event.Type == "customer.subscription.deleted" {
		state.Status = billing.SubscriptionStatusCanceled
	}

	b, err := s.resolveBusiness(ctx, state)
	if err != nil {
		// An unattributable subscription is logged, acknowledged and dropped;
		// returning an error would make the provider retry forever.
		s.logger.Error("webhook subscription not attributable to a business",
			zap.String("event_id", event.ID),
			zap.String("subscription_id", state.SubscriptionID),
			zap.Error(err))
		return nil
	}

	sub, err := s.subscriptionRepo.FindByStripeID(ctx, state.SubscriptionID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		sub, err = billing.NewSubscription(b.ID, state.SubscriptionID, state.Plan, state.Status)
		if err != nil {
			return err
		}
	}
	sub.Sync(state.Status, state.PriceID, state.CurrentPeriodEnd, state.CancelAtPeriodEnd)
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return err
	}

	if err := s.syncBusiness(ctx, b, state); err != nil {
		return err
	}

	s.logger.Info("subscription mirror synced",
		zap.String("event_id", event.ID),
		zap.String("tenant_id", b.ID.String()),
		zap.String("subscription_id", state.SubscriptionID),
		zap.String("status", string(state.Status)))
	return nil
}

// resolveBusiness attributes the event to a tenant: the tenant_id carried in
// subscription metadata wins, the provider customer ID is the fallback.
func (s *WebhookService) resolveBusiness(ctx context.Context, state *infrabilling.SubscriptionState) (*identity.Business, error) {
	if state.TenantID != "" {
		if tenantID, err := uuid.Parse(state.TenantID); err == nil {
			if b, err := s.businessRepo.FindByID(ctx, tenantID); err == nil {
				return b, nil
			}
		}
	}
	if state.CustomerID != "" {
		return s.businessRepo.FindByStripeCustomerID(ctx, state.CustomerID)
	}
	return nil, shared.ErrNotFound
}

func (s *WebhookService) syncBusiness(ctx context.Context, b *identity.Business, state *infrabilling.SubscriptionState) error {
	switch state.Status {
	case billing.SubscriptionStatusActive, billing.SubscriptionStatusTrialing:
		if state.Plan != "" {
			if err := b.ChangePlan(identity.BusinessPlan(state.Plan)); err != nil {
				return err
			}
		}
		b.Activate()
	case billing.SubscriptionStatusPastDue:
		if err := b.Suspend(); err != nil {
			return err
		}
	case billing.SubscriptionStatusCanceled:
		if err := b.ChangePlan(identity.BusinessPlanFree); err != nil {
			return err
		}
	}
	if err := s.businessRepo.Save(ctx, b); err != nil {
		return err
	}
	events.Publish(ctx, b)
	return nil
}
