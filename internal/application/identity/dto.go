package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/infrastructure/auth"
)

// RegisterRequest creates a user account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=100"`
	FullName string `json:"full_name" binding:"omitempty,max=100"`
}

// LoginRequest authenticates a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the API representation of a User
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToUserResponse converts a User to a UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		LastLogin: u.LastLoginAt,
		CreatedAt: u.CreatedAt,
	}
}

// AuthResponse carries the issued token and the authenticated user
type AuthResponse struct {
	Token *auth.Token  `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateBusinessRequest onboards the caller's business
type CreateBusinessRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	ContactName  string `json:"contact_name" binding:"omitempty,max=100"`
	ContactPhone string `json:"contact_phone" binding:"omitempty,max=50"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email,max=200"`
	Address      string `json:"address"`
	City         string `json:"city" binding:"omitempty,max=100"`
	State        string `json:"state" binding:"omitempty,max=100"`
	PostalCode   string `json:"postal_code" binding:"omitempty,max=20"`
}

// UpdateBusinessRequest edits business profile fields
type UpdateBusinessRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=200"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=100"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=200"`
	Address      *string `json:"address"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	State        *string `json:"state" binding:"omitempty,max=100"`
	PostalCode   *string `json:"postal_code" binding:"omitempty,max=20"`
	LogoURL      *string `json:"logo_url" binding:"omitempty,max=500"`
	Notes        *string `json:"notes"`
}

// BusinessResponse is the API representation of a Business
type BusinessResponse struct {
	ID           uuid.UUID               `json:"id"`
	Name         string                  `json:"name"`
	Status       identity.BusinessStatus `json:"status"`
	Plan         identity.BusinessPlan   `json:"plan"`
	ContactName  string                  `json:"contact_name"`
	ContactPhone string                  `json:"contact_phone"`
	ContactEmail string                  `json:"contact_email"`
	Address      string                  `json:"address"`
	City         string                  `json:"city"`
	State        string                  `json:"state"`
	PostalCode   string                  `json:"postal_code"`
	LogoURL      string                  `json:"logo_url"`
	TrialEndsAt  *time.Time              `json:"trial_ends_at,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ToBusinessResponse converts a Business to a BusinessResponse
func ToBusinessResponse(b *identity.Business) BusinessResponse {
	return BusinessResponse{
		ID:           b.ID,
		Name:         b.Name,
		Status:       b.Status,
		Plan:         b.Plan,
		ContactName:  b.ContactName,
		ContactPhone: b.ContactPhone,
		ContactEmail: b.ContactEmail,
		Address:      b.Address,
		City:         b.City,
		State:        b.State,
		PostalCode:   b.PostalCode,
		LogoURL:      b.LogoURL,
		TrialEndsAt:  b.TrialEndsAt,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}
