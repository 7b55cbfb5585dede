package directory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// ClientStatus represents the status of a client relationship
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusArchived ClientStatus = "archived"
)

// Client is a customer of the business: the party projects are built for
// and invoices are billed to.
type Client struct {
	shared.TenantAggregateRoot
	Name        string       `gorm:"type:varchar(200);not null;index"`
	CompanyName string       `gorm:"type:varchar(200)"`
	Status      ClientStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Email       string       `gorm:"type:varchar(200);index"`
	Phone       string       `gorm:"type:varchar(50)"`
	Address     string       `gorm:"type:text"`
	City        string       `gorm:"type:varchar(100)"`
	State       string       `gorm:"type:varchar(100)"`
	PostalCode  string       `gorm:"type:varchar(20)"`
	Notes       string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a client for the given business
func NewClient(tenantID uuid.UUID, name string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}

	c := &Client{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Status:              ClientStatusActive,
	}

	c.AddDomainEvent(NewClientCreatedEvent(c))

	return c, nil
}

// Update updates the client's basic information
func (c *Client) Update(name, companyName string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	c.Name = name
	c.CompanyName = companyName
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetContact sets the client's contact details
func (c *Client) SetContact(email, phone string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	c.Email = strings.ToLower(email)
	c.Phone = phone
	c.UpdatedAt = time.Now()
	return nil
}

// SetAddress sets the client's address
func (c *Client) SetAddress(address, city, state, postalCode string) {
	c.Address = address
	c.City = city
	c.State = state
	c.PostalCode = postalCode
	c.UpdatedAt = time.Now()
}

// Archive soft-archives the client; rows are never hard-deleted without
// an explicit scoped delete.
func (c *Client) Archive() {
	c.Status = ClientStatusArchived
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	shared.TenantRepository[Client]

	// Search matches name, company name or email case-insensitively
	Search(ctx context.Context, tenantID uuid.UUID, term string) ([]Client, error)

	// FindByStatus lists clients in the given status
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status ClientStatus, filter shared.Filter) ([]Client, error)
}
