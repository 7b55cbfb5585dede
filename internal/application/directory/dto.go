package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/directory"
)

// =============================================================================
// Client DTOs
// =============================================================================

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	Email       string `json:"email" binding:"omitempty,email,max=200"`
	Phone       string `json:"phone" binding:"max=50"`
	Address     string `json:"address" binding:"max=500"`
	City        string `json:"city" binding:"max=100"`
	State       string `json:"state" binding:"max=100"`
	PostalCode  string `json:"postal_code" binding:"max=20"`
	Notes       string `json:"notes"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=200"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	State       *string `json:"state" binding:"omitempty,max=100"`
	PostalCode  *string `json:"postal_code" binding:"omitempty,max=20"`
	Notes       *string `json:"notes"`
}

// ClientListFilter represents filtering options for client listing
type ClientListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active archived"`
	City     string `form:"city"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Status      string    `json:"status"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	PostalCode  string    `json:"postal_code"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToClientResponse converts a domain client to a response DTO
func ToClientResponse(c *directory.Client) ClientResponse {
	return ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		CompanyName: c.CompanyName,
		Status:      string(c.Status),
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		PostalCode:  c.PostalCode,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Version:     c.Version,
	}
}

// ToClientResponses converts a slice of domain clients to response DTOs
func ToClientResponses(clients []directory.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}

// =============================================================================
// Contact DTOs
// =============================================================================

// CreateContactRequest represents a request to create a client contact
type CreateContactRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Title     string `json:"title" binding:"max=100"`
	Email     string `json:"email" binding:"omitempty,email,max=200"`
	Phone     string `json:"phone" binding:"max=50"`
	IsPrimary bool   `json:"is_primary"`
}

// UpdateContactRequest represents a request to update a client contact
type UpdateContactRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=100"`
	Title     *string `json:"title" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email,max=200"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	IsPrimary *bool   `json:"is_primary"`
}

// ContactResponse represents a client contact in API responses
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"client_id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToContactResponse converts a domain contact to a response DTO
func ToContactResponse(c *directory.ClientContact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		ClientID:  c.ClientID,
		Name:      c.Name,
		Title:     c.Title,
		Email:     c.Email,
		Phone:     c.Phone,
		IsPrimary: c.IsPrimary,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToContactResponses converts a slice of domain contacts to response DTOs
func ToContactResponses(contacts []directory.ClientContact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses
}

// =============================================================================
// Interaction DTOs
// =============================================================================

// CreateInteractionRequest represents a request to log a client interaction
type CreateInteractionRequest struct {
	Kind       string    `json:"kind" binding:"required,oneof=call email meeting site_visit other"`
	Summary    string    `json:"summary" binding:"required,min=1,max=500"`
	Details    string    `json:"details"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InteractionListFilter represents filtering options for interaction listing
type InteractionListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Kind     string `form:"kind" binding:"omitempty,oneof=call email meeting site_visit other"`
}

// InteractionResponse represents a client interaction in API responses
type InteractionResponse struct {
	ID         uuid.UUID `json:"id"`
	ClientID   uuid.UUID `json:"client_id"`
	Kind       string    `json:"kind"`
	Summary    string    `json:"summary"`
	Details    string    `json:"details"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToInteractionResponse converts a domain interaction to a response DTO
func ToInteractionResponse(i *directory.ClientInteraction) InteractionResponse {
	return InteractionResponse{
		ID:         i.ID,
		ClientID:   i.ClientID,
		Kind:       string(i.Kind),
		Summary:    i.Summary,
		Details:    i.Details,
		OccurredAt: i.OccurredAt,
		CreatedAt:  i.CreatedAt,
	}
}

// ToInteractionResponses converts a slice of domain interactions to response DTOs
func ToInteractionResponses(interactions []directory.ClientInteraction) []InteractionResponse {
	responses := make([]InteractionResponse, len(interactions))
	for i := range interactions {
		responses[i] = ToInteractionResponse(&interactions[i])
	}
	return responses
}
