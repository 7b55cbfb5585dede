package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/directory"
	"github.com/jobsight/backend/internal/domain/shared"
)

// ContactService handles client contact and interaction operations
type ContactService struct {
	clientRepo      directory.ClientRepository
	contactRepo     directory.ClientContactRepository
	interactionRepo directory.ClientInteractionRepository
}

// NewContactService creates a new ContactService
func NewContactService(
	clientRepo directory.ClientRepository,
	contactRepo directory.ClientContactRepository,
	interactionRepo directory.ClientInteractionRepository,
) *ContactService {
	return &ContactService{
		clientRepo:      clientRepo,
		contactRepo:     contactRepo,
		interactionRepo: interactionRepo,
	}
}

// CreateContact adds a contact under a client. The client must belong to the
// business; a foreign client ID reads as not found.
func (s *ContactService) CreateContact(ctx context.Context, tenantID, clientID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return nil, err
	}

	contact, err := directory.NewClientContact(tenantID, clientID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Title != "" || req.Email != "" || req.Phone != "" {
		if err := contact.Update(contact.Name, req.Title, req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.IsPrimary {
		contact.MarkPrimary()
	}

	if err := s.contactRepo.Create(ctx, tenantID, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// ListContacts lists contacts of a client, primary first
func (s *ContactService) ListContacts(ctx context.Context, tenantID, clientID uuid.UUID) ([]ContactResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return nil, err
	}

	contacts, err := s.contactRepo.FindByClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	return ToContactResponses(contacts), nil
}

// UpdateContact updates a contact
func (s *ContactService) UpdateContact(ctx context.Context, tenantID, contactID uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForTenant(ctx, tenantID, contactID)
	if err != nil {
		return nil, err
	}

	name := contact.Name
	title := contact.Title
	email := contact.Email
	phone := contact.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Title != nil {
		title = *req.Title
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := contact.Update(name, title, email, phone); err != nil {
		return nil, err
	}

	if req.IsPrimary != nil {
		if *req.IsPrimary {
			contact.MarkPrimary()
		} else {
			contact.IsPrimary = false
		}
	}

	if err := s.contactRepo.Update(ctx, tenantID, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// DeleteContact removes a contact
func (s *ContactService) DeleteContact(ctx context.Context, tenantID, contactID uuid.UUID) error {
	return s.contactRepo.DeleteForTenant(ctx, tenantID, contactID)
}

// LogInteraction records a touchpoint with a client
func (s *ContactService) LogInteraction(ctx context.Context, tenantID, clientID uuid.UUID, req CreateInteractionRequest) (*InteractionResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return nil, err
	}

	interaction, err := directory.NewClientInteraction(
		tenantID, clientID, directory.InteractionKind(req.Kind), req.Summary, req.OccurredAt)
	if err != nil {
		return nil, err
	}
	interaction.Details = req.Details

	if err := s.interactionRepo.Create(ctx, tenantID, interaction); err != nil {
		return nil, err
	}

	response := ToInteractionResponse(interaction)
	return &response, nil
}

// ListInteractions lists interactions of a client, newest first
func (s *ContactService) ListInteractions(ctx context.Context, tenantID, clientID uuid.UUID, filter InteractionListFilter) ([]InteractionResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return nil, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]any),
	}
	if filter.Kind != "" {
		domainFilter.Filters["kind"] = filter.Kind
	}

	interactions, err := s.interactionRepo.FindByClient(ctx, tenantID, clientID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToInteractionResponses(interactions), nil
}
