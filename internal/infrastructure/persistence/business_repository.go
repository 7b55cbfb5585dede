package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/shared"
)

// GormBusinessRepository implements BusinessRepository using GORM.
// Businesses are the tenants themselves, so this repository is one of the
// few that operate on an unscoped table.
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// FindByID finds a business by its ID
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	var business identity.Business
	if err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// FindByOwner finds the single business owned by the given user
func (r *GormBusinessRepository) FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*identity.Business, error) {
	var business identity.Business
	if err := r.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// FindByStripeCustomerID resolves a business from its payment-provider customer ID
func (r *GormBusinessRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*identity.Business, error) {
	if customerID == "" {
		return nil, shared.ErrNotFound
	}
	var business identity.Business
	if err := r.db.WithContext(ctx).
		Where("stripe_customer_id = ?", customerID).
		First(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// Save creates or updates a business
func (r *GormBusinessRepository) Save(ctx context.Context, business *identity.Business) error {
	return r.db.WithContext(ctx).Save(business).Error
}

var _ identity.BusinessRepository = (*GormBusinessRepository)(nil)

// GormUserRepository implements UserRepository using GORM.
// Users are login principals and live outside the tenant scope.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email, matched case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail reports whether a user with the given email exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
