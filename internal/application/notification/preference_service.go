package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/notification"
	"github.com/jobsight/backend/internal/domain/shared"
)

// PreferenceService manages per-kind channel preferences and push endpoints
type PreferenceService struct {
	preferenceRepo notification.PreferenceRepository
	pushSubRepo    notification.PushSubscriptionRepository
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(
	preferenceRepo notification.PreferenceRepository,
	pushSubRepo notification.PushSubscriptionRepository,
) *PreferenceService {
	return &PreferenceService{
		preferenceRepo: preferenceRepo,
		pushSubRepo:    pushSubRepo,
	}
}

// ListByUser retrieves a user's customized preferences. Kinds never
// customized are absent and default to both channels enabled.
func (s *PreferenceService) ListByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]PreferenceResponse, error) {
	prefs, err := s.preferenceRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return ToPreferenceResponses(prefs), nil
}

// Upsert creates or updates the preference row for one kind
func (s *PreferenceService) Upsert(ctx context.Context, tenantID, userID uuid.UUID, req UpdatePreferenceRequest) (*PreferenceResponse, error) {
	pref, err := s.preferenceRepo.FindByUserAndKind(ctx, tenantID, userID, req.Kind)
	switch {
	case err == nil:
		pref.EmailEnabled = req.EmailEnabled
		pref.PushEnabled = req.PushEnabled
		if err := s.preferenceRepo.Update(ctx, tenantID, pref); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		pref, err = notification.NewPreference(tenantID, userID, req.Kind, req.EmailEnabled, req.PushEnabled)
		if err != nil {
			return nil, err
		}
		if err := s.preferenceRepo.Create(ctx, tenantID, pref); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	response := ToPreferenceResponse(pref)
	return &response, nil
}

// RegisterPush registers a browser push endpoint. Re-registering an
// endpoint the user already holds returns the existing row.
func (s *PreferenceService) RegisterPush(ctx context.Context, tenantID, userID uuid.UUID, req RegisterPushRequest) (*PushSubscriptionResponse, error) {
	existing, err := s.pushSubRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Endpoint == req.Endpoint {
			response := ToPushSubscriptionResponse(&existing[i])
			return &response, nil
		}
	}

	sub, err := notification.NewPushSubscription(tenantID, userID, req.Endpoint, req.P256dh, req.AuthKey)
	if err != nil {
		return nil, err
	}
	if err := s.pushSubRepo.Create(ctx, tenantID, sub); err != nil {
		return nil, err
	}

	response := ToPushSubscriptionResponse(sub)
	return &response, nil
}

// ListPush lists a user's registered push endpoints
func (s *PreferenceService) ListPush(ctx context.Context, tenantID, userID uuid.UUID) ([]PushSubscriptionResponse, error) {
	subs, err := s.pushSubRepo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return ToPushSubscriptionResponses(subs), nil
}

// UnregisterPush removes one of the user's push endpoints
func (s *PreferenceService) UnregisterPush(ctx context.Context, tenantID, userID, subscriptionID uuid.UUID) error {
	sub, err := s.pushSubRepo.FindByIDForTenant(ctx, tenantID, subscriptionID)
	if err != nil {
		return err
	}
	if sub.UserID != userID {
		return shared.ErrNotFound
	}
	return s.pushSubRepo.DeleteForTenant(ctx, tenantID, subscriptionID)
}
