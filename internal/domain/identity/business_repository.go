package identity

import (
	"context"

	"github.com/google/uuid"
)

// BusinessRepository defines the interface for business persistence.
// A business is the tenant itself, so this repository is not tenant-scoped.
type BusinessRepository interface {
	// FindByID finds a business by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)

	// FindByOwner finds the single business owned by the given user.
	// Returns shared.ErrNotFound when the user has no business yet.
	FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*Business, error)

	// FindByStripeCustomerID resolves a business from its payment-provider
	// customer ID, used by webhook processing.
	FindByStripeCustomerID(ctx context.Context, customerID string) (*Business, error)

	// Save creates or updates a business
	Save(ctx context.Context, business *Business) error
}
