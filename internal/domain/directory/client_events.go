package directory

import (
	"github.com/jobsight/backend/internal/domain/shared"
)

const (
	EventTypeClientCreated = "directory.client.created"
)

// ClientCreatedEvent is raised when a client is added to the directory
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewClientCreatedEvent creates a ClientCreatedEvent
func NewClientCreatedEvent(c *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, "Client", c.ID, c.TenantID),
		Name:            c.Name,
	}
}
