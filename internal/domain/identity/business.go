package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// BusinessStatus represents the lifecycle status of a business
type BusinessStatus string

const (
	BusinessStatusActive    BusinessStatus = "active"
	BusinessStatusTrial     BusinessStatus = "trial"
	BusinessStatusSuspended BusinessStatus = "suspended" // Suspended for payment issues
	BusinessStatusCanceled  BusinessStatus = "canceled"
)

// BusinessPlan represents the subscription plan of a business
type BusinessPlan string

const (
	BusinessPlanFree    BusinessPlan = "free"
	BusinessPlanStarter BusinessPlan = "starter"
	BusinessPlanPro     BusinessPlan = "pro"
	BusinessPlanCrew    BusinessPlan = "crew" // Legacy plan kept for grandfathered accounts
)

// Business is the tenant of the system: one paying construction company.
// Every business-owned row carries its ID, set at creation and never changed.
// Businesses are never hard-deleted; cancellation is a status change.
type Business struct {
	shared.BaseAggregateRoot
	OwnerUserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Name             string         `gorm:"type:varchar(200);not null"`
	Status           BusinessStatus `gorm:"type:varchar(20);not null;default:'trial'"`
	Plan             BusinessPlan   `gorm:"type:varchar(20);not null;default:'free'"`
	ContactName      string         `gorm:"type:varchar(100)"`
	ContactPhone     string         `gorm:"type:varchar(50)"`
	ContactEmail     string         `gorm:"type:varchar(200)"`
	Address          string         `gorm:"type:text"`
	City             string         `gorm:"type:varchar(100)"`
	State            string         `gorm:"type:varchar(100)"`
	PostalCode       string         `gorm:"type:varchar(20)"`
	LogoURL          string         `gorm:"type:varchar(500)"`
	StripeCustomerID string         `gorm:"type:varchar(100);index"`
	TrialEndsAt      *time.Time
	Notes            string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Business) TableName() string {
	return "businesses"
}

// NewBusiness creates a new business in trial status owned by the given user
func NewBusiness(ownerUserID uuid.UUID, name string, trialDays int) (*Business, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot exceed 200 characters")
	}
	if ownerUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Business owner is required")
	}

	b := &Business{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerUserID:       ownerUserID,
		Name:              name,
		Status:            BusinessStatusTrial,
		Plan:              BusinessPlanFree,
	}
	if trialDays > 0 {
		ends := time.Now().AddDate(0, 0, trialDays)
		b.TrialEndsAt = &ends
	}

	b.AddDomainEvent(NewBusinessCreatedEvent(b))

	return b, nil
}

// Activate moves the business out of trial/suspension
func (b *Business) Activate() {
	b.Status = BusinessStatusActive
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// Suspend suspends the business, typically after failed payments
func (b *Business) Suspend() error {
	if b.Status == BusinessStatusCanceled {
		return shared.ErrInvalidState
	}
	b.Status = BusinessStatusSuspended
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Cancel marks the business canceled. Data is retained.
func (b *Business) Cancel() {
	b.Status = BusinessStatusCanceled
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// ChangePlan switches the subscription plan
func (b *Business) ChangePlan(plan BusinessPlan) error {
	switch plan {
	case BusinessPlanFree, BusinessPlanStarter, BusinessPlanPro, BusinessPlanCrew:
	default:
		return shared.NewDomainError("INVALID_PLAN", "Unknown subscription plan")
	}
	b.Plan = plan
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	b.AddDomainEvent(NewBusinessPlanChangedEvent(b))
	return nil
}

// SetStripeCustomerID links the business to its payment-provider customer
func (b *Business) SetStripeCustomerID(id string) {
	b.StripeCustomerID = id
	b.UpdatedAt = time.Now()
}

// SetContact updates contact details
func (b *Business) SetContact(name, phone, email string) error {
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	b.ContactName = name
	b.ContactPhone = phone
	b.ContactEmail = strings.ToLower(email)
	b.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the business may use the application
func (b *Business) IsActive() bool {
	return b.Status == BusinessStatusActive || b.Status == BusinessStatusTrial
}
