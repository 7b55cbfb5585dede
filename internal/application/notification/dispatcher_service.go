package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/notification"
	"github.com/jobsight/backend/internal/domain/shared"
	infranotification "github.com/jobsight/backend/internal/infrastructure/notification"
)

// EmailSender delivers one email. Satisfied by the SMTP sender.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// PushSender delivers one push message. Satisfied by the HTTP push sender.
type PushSender interface {
	Enabled() bool
	Send(ctx context.Context, endpoint string, payload infranotification.PushPayload) error
}

// DispatcherService creates in-app notifications and fans them out to email
// and push honoring the recipient's per-kind preferences. Channel delivery
// is best effort: failures are logged and never surface to the caller.
type DispatcherService struct {
	notificationRepo notification.NotificationRepository
	preferenceRepo   notification.PreferenceRepository
	pushSubRepo      notification.PushSubscriptionRepository
	userRepo         identity.UserRepository
	businessRepo     identity.BusinessRepository
	email            EmailSender
	push             PushSender
	logger           *zap.Logger
}

// NewDispatcherService creates a new DispatcherService. The email and push
// senders may be nil when the channel is not configured.
func NewDispatcherService(
	notificationRepo notification.NotificationRepository,
	preferenceRepo notification.PreferenceRepository,
	pushSubRepo notification.PushSubscriptionRepository,
	userRepo identity.UserRepository,
	businessRepo identity.BusinessRepository,
	email EmailSender,
	push PushSender,
	logger *zap.Logger,
) *DispatcherService {
	return &DispatcherService{
		notificationRepo: notificationRepo,
		preferenceRepo:   preferenceRepo,
		pushSubRepo:      pushSubRepo,
		userRepo:         userRepo,
		businessRepo:     businessRepo,
		email:            email,
		push:             push,
		logger:           logger,
	}
}

// Dispatch creates the in-app notification row and attempts channel
// delivery. Only the row creation can fail the call.
func (s *DispatcherService) Dispatch(ctx context.Context, tenantID, userID uuid.UUID, kind notification.Kind, title, body string) error {
	n, err := notification.NewNotification(tenantID, userID, kind, title, body)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.Create(ctx, tenantID, n); err != nil {
		return err
	}

	emailWanted, pushWanted := s.channels(ctx, tenantID, userID, kind)

	delivered := false
	if emailWanted && s.email != nil {
		if s.deliverEmail(ctx, n) {
			n.RecordEmailed()
			delivered = true
		}
	}
	if pushWanted && s.push != nil && s.push.Enabled() {
		if s.deliverPush(ctx, n) {
			n.RecordPushed()
			delivered = true
		}
	}

	if delivered {
		if err := s.notificationRepo.Update(ctx, tenantID, n); err != nil {
			s.logger.Warn("failed to record notification delivery",
				zap.String("notification_id", n.ID.String()),
				zap.Error(err))
		}
	}
	return nil
}

// DispatchToOwner dispatches to the business owner
func (s *DispatcherService) DispatchToOwner(ctx context.Context, tenantID uuid.UUID, kind notification.Kind, title, body string) error {
	b, err := s.businessRepo.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}
	return s.Dispatch(ctx, tenantID, b.OwnerUserID, kind, title, body)
}

// channels resolves the recipient's channel preferences for a kind. A user
// who never customized the kind gets both channels.
func (s *DispatcherService) channels(ctx context.Context, tenantID, userID uuid.UUID, kind notification.Kind) (emailWanted, pushWanted bool) {
	pref, err := s.preferenceRepo.FindByUserAndKind(ctx, tenantID, userID, kind)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("failed to load notification preference",
				zap.String("user_id", userID.String()),
				zap.String("kind", string(kind)),
				zap.Error(err))
		}
		return true, true
	}
	return pref.EmailEnabled, pref.PushEnabled
}

func (s *DispatcherService) deliverEmail(ctx context.Context, n *notification.Notification) bool {
	u, err := s.userRepo.FindByID(ctx, n.UserID)
	if err != nil {
		s.logger.Warn("notification recipient not resolvable for email",
			zap.String("user_id", n.UserID.String()),
			zap.Error(err))
		return false
	}
	if err := s.email.Send(ctx, u.Email, n.Title, n.Body); err != nil {
		s.logger.Warn("notification email delivery failed",
			zap.String("notification_id", n.ID.String()),
			zap.Error(err))
		return false
	}
	return true
}

// deliverPush posts to every registered endpoint and prunes endpoints the
// provider reports gone. One successful endpoint counts as delivered.
func (s *DispatcherService) deliverPush(ctx context.Context, n *notification.Notification) bool {
	subs, err := s.pushSubRepo.FindByUser(ctx, n.TenantID, n.UserID)
	if err != nil {
		s.logger.Warn("failed to load push subscriptions",
			zap.String("user_id", n.UserID.String()),
			zap.Error(err))
		return false
	}

	payload := infranotification.PushPayload{
		Title: n.Title,
		Body:  n.Body,
		Kind:  string(n.Kind),
	}

	delivered := false
	for _, sub := range subs {
		err := s.push.Send(ctx, sub.Endpoint, payload)
		if err == nil {
			delivered = true
			continue
		}
		if errors.Is(err, infranotification.ErrEndpointGone) {
			if delErr := s.pushSubRepo.DeleteForTenant(ctx, n.TenantID, sub.ID); delErr != nil {
				s.logger.Warn("failed to prune gone push endpoint",
					zap.String("subscription_id", sub.ID.String()),
					zap.Error(delErr))
			} else {
				s.logger.Info("pruned gone push endpoint",
					zap.String("subscription_id", sub.ID.String()))
			}
			continue
		}
		s.logger.Warn("notification push delivery failed",
			zap.String("notification_id", n.ID.String()),
			zap.Error(err))
	}
	return delivered
}
