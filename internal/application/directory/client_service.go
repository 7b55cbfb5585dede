package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/directory"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/events"
)

// ClientService handles client-related business operations
type ClientService struct {
	clientRepo directory.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo directory.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
	}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := directory.NewClient(tenantID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != "" {
		if err := client.Update(client.Name, req.CompanyName); err != nil {
			return nil, err
		}
	}
	if req.Email != "" || req.Phone != "" {
		if err := client.SetContact(req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Address != "" || req.City != "" || req.State != "" || req.PostalCode != "" {
		client.SetAddress(req.Address, req.City, req.State, req.PostalCode)
	}
	if req.Notes != "" {
		client.Notes = req.Notes
	}

	if err := s.clientRepo.Create(ctx, tenantID, client); err != nil {
		return nil, err
	}
	events.Publish(ctx, client)

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, tenantID uuid.UUID, filter ClientListFilter) ([]ClientResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}
	if filter.Search != "" {
		domainFilter.Or = shared.SearchFilter(filter.Search, "name", "company_name", "email").Or
	}

	clients, err := s.clientRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.clientRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToClientResponses(clients), total, nil
}

// Search matches clients against a free-text term
func (s *ClientService) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]ClientResponse, error) {
	if term == "" {
		return []ClientResponse{}, nil
	}

	clients, err := s.clientRepo.Search(ctx, tenantID, term)
	if err != nil {
		return nil, err
	}

	return ToClientResponses(clients), nil
}

// Update updates a client
func (s *ClientService) Update(ctx context.Context, tenantID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.CompanyName != nil {
		name := client.Name
		companyName := client.CompanyName
		if req.Name != nil {
			name = *req.Name
		}
		if req.CompanyName != nil {
			companyName = *req.CompanyName
		}
		if err := client.Update(name, companyName); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Phone != nil {
		email := client.Email
		phone := client.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := client.SetContact(email, phone); err != nil {
			return nil, err
		}
	}

	if req.Address != nil || req.City != nil || req.State != nil || req.PostalCode != nil {
		address := client.Address
		city := client.City
		state := client.State
		postalCode := client.PostalCode
		if req.Address != nil {
			address = *req.Address
		}
		if req.City != nil {
			city = *req.City
		}
		if req.State != nil {
			state = *req.State
		}
		if req.PostalCode != nil {
			postalCode = *req.PostalCode
		}
		client.SetAddress(address, city, state, postalCode)
	}

	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := s.clientRepo.Update(ctx, tenantID, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Archive marks a client archived without deleting its history
func (s *ClientService) Archive(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	client.Archive()

	if err := s.clientRepo.Update(ctx, tenantID, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, tenantID, clientID uuid.UUID) error {
	return s.clientRepo.DeleteForTenant(ctx, tenantID, clientID)
}
