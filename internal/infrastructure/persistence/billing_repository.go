package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/billing"
	"github.com/jobsight/backend/internal/domain/shared"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	*ScopedRepository[billing.Invoice]
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		ScopedRepository: NewScopedRepository[billing.Invoice](db, InvoiceSortFields, "created_at DESC"),
	}
}

// Search matches number or notes case-insensitively
func (r *GormInvoiceRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]billing.Invoice, error) {
	f := shared.SearchFilter(term, "number", "notes")
	// notes is searchable but not sortable, widen the allowlist locally
	var model billing.Invoice
	var invoices []billing.Invoice
	pattern := "%" + term + "%"
	query := r.DB().WithContext(ctx).Model(&model).
		Where("tenant_id = ?", tenantID).
		Where("number ILIKE ? OR notes ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Limit(f.PageSize)
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByClient lists invoices of one client
func (r *GormInvoiceRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["client_id"] = clientID
	return r.FindAllForTenant(ctx, tenantID, filter)
}

// FindByStatus lists invoices in the given status
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status billing.InvoiceStatus, filter shared.Filter) ([]billing.Invoice, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["status"] = status
	return r.FindAllForTenant(ctx, tenantID, filter)
}

// CountForTenantAll counts every invoice ever issued, used for numbering
func (r *GormInvoiceRepository) CountForTenantAll(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.DB().WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)

// GormInvoiceItemRepository implements InvoiceItemRepository using GORM
type GormInvoiceItemRepository struct {
	*ScopedRepository[billing.InvoiceItem]
}

// NewGormInvoiceItemRepository creates a new GormInvoiceItemRepository
func NewGormInvoiceItemRepository(db *gorm.DB) *GormInvoiceItemRepository {
	return &GormInvoiceItemRepository{
		ScopedRepository: NewScopedRepository[billing.InvoiceItem](db,
			map[string]bool{"invoice_id": true},
			"created_at ASC"),
	}
}

// FindByInvoice lists line items of one invoice
func (r *GormInvoiceItemRepository) FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]billing.InvoiceItem, error) {
	var items []billing.InvoiceItem
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND invoice_id = ?", tenantID, invoiceID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var _ billing.InvoiceItemRepository = (*GormInvoiceItemRepository)(nil)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindForTenant returns the business's subscription, ErrNotFound if none
func (r *GormSubscriptionRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID) (*billing.Subscription, error) {
	var sub billing.Subscription
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByStripeID resolves a mirror row from the provider's ID
func (r *GormSubscriptionRepository) FindByStripeID(ctx context.Context, stripeSubID string) (*billing.Subscription, error) {
	if stripeSubID == "" {
		return nil, shared.ErrNotFound
	}
	var sub billing.Subscription
	if err := r.db.WithContext(ctx).
		Where("stripe_subscription_id = ?", stripeSubID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Save creates or updates a mirror row
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *billing.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

var _ billing.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
