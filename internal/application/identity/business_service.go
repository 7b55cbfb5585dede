package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/events"
)

// BusinessService handles business onboarding and profile management.
// A user owns at most one business, and that business is the tenant scope
// for everything else in the system.
type BusinessService struct {
	businessRepo identity.BusinessRepository
	trialDays    int
	logger       *zap.Logger
}

// NewBusinessService creates a new BusinessService
func NewBusinessService(businessRepo identity.BusinessRepository, trialDays int, logger *zap.Logger) *BusinessService {
	return &BusinessService{
		businessRepo: businessRepo,
		trialDays:    trialDays,
		logger:       logger,
	}
}

// Create onboards the caller's business. A second business for the same
// owner is refused.
func (s *BusinessService) Create(ctx context.Context, ownerUserID uuid.UUID, req CreateBusinessRequest) (*BusinessResponse, error) {
	_, err := s.businessRepo.FindByOwner(ctx, ownerUserID)
	switch {
	case err == nil:
		return nil, shared.ErrAlreadyExists
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	b, err := identity.NewBusiness(ownerUserID, req.Name, s.trialDays)
	if err != nil {
		return nil, err
	}
	if err := b.SetContact(req.ContactName, req.ContactPhone, req.ContactEmail); err != nil {
		return nil, err
	}
	b.Address = req.Address
	b.City = req.City
	b.State = req.State
	b.PostalCode = req.PostalCode

	if err := s.businessRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	events.Publish(ctx, b)

	s.logger.Info("business onboarded",
		zap.String("tenant_id", b.ID.String()),
		zap.String("owner_user_id", ownerUserID.String()))

	response := ToBusinessResponse(b)
	return &response, nil
}

// ResolveForOwner returns the tenant the user operates in. A user with no
// business gets ErrNoBusiness; callers must not fall back to any default.
func (s *BusinessService) ResolveForOwner(ctx context.Context, ownerUserID uuid.UUID) (*identity.Business, error) {
	b, err := s.businessRepo.FindByOwner(ctx, ownerUserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNoBusiness
		}
		return nil, err
	}
	return b, nil
}

// GetByOwner retrieves the caller's business profile
func (s *BusinessService) GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*BusinessResponse, error) {
	b, err := s.ResolveForOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	response := ToBusinessResponse(b)
	return &response, nil
}

// Update edits the caller's business profile with partial semantics
func (s *BusinessService) Update(ctx context.Context, ownerUserID uuid.UUID, req UpdateBusinessRequest) (*BusinessResponse, error) {
	b, err := s.ResolveForOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := *req.Name
		if name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
		}
		b.Name = name
	}
	contactName := b.ContactName
	contactPhone := b.ContactPhone
	contactEmail := b.ContactEmail
	if req.ContactName != nil {
		contactName = *req.ContactName
	}
	if req.ContactPhone != nil {
		contactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		contactEmail = *req.ContactEmail
	}
	if err := b.SetContact(contactName, contactPhone, contactEmail); err != nil {
		return nil, err
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.City != nil {
		b.City = *req.City
	}
	if req.State != nil {
		b.State = *req.State
	}
	if req.PostalCode != nil {
		b.PostalCode = *req.PostalCode
	}
	if req.LogoURL != nil {
		b.LogoURL = *req.LogoURL
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := s.businessRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	response := ToBusinessResponse(b)
	return &response, nil
}

// Cancel marks the caller's business canceled. Data is retained.
func (s *BusinessService) Cancel(ctx context.Context, ownerUserID uuid.UUID) error {
	b, err := s.ResolveForOwner(ctx, ownerUserID)
	if err != nil {
		return err
	}
	b.Cancel()
	return s.businessRepo.Save(ctx, b)
}
