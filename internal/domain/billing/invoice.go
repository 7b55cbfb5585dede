package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// Invoice bills a client for work on a project. Line items are child rows;
// the stored total is recomputed whenever items change.
type Invoice struct {
	shared.TenantAggregateRoot
	Number    string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	ClientID  uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoice_tenant_number,priority:1"`
	ProjectID *uuid.UUID      `gorm:"type:uuid;index"`
	Status    InvoiceStatus   `gorm:"type:varchar(20);not null;default:'draft'"`
	Total     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IssuedAt  *time.Time
	DueAt     *time.Time `gorm:"index"`
	PaidAt    *time.Time
	Notes     string     `gorm:"type:text"`
	Items     []InvoiceItem `gorm:"-"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one billed line on an invoice.
type InvoiceItem struct {
	shared.TenantAggregateRoot
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,3);not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewInvoice creates a draft invoice for a client
func NewInvoice(tenantID, clientID uuid.UUID, number string) (*Invoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Invoice requires a client")
	}

	inv := &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              strings.ToUpper(number),
		ClientID:            clientID,
		Status:              InvoiceStatusDraft,
		Total:               decimal.Zero,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddItem appends a line item and recomputes the total. Only draft
// invoices may change.
func (i *Invoice) AddItem(description string, quantity, unitPrice decimal.Decimal) (*InvoiceItem, error) {
	if i.Status != InvoiceStatusDraft {
		return nil, shared.ErrInvalidState
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := &InvoiceItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(i.TenantID),
		InvoiceID:           i.ID,
		Description:         description,
		Quantity:            quantity,
		UnitPrice:           unitPrice,
		Amount:              quantity.Mul(unitPrice).Round(2),
	}
	i.Items = append(i.Items, *item)
	i.RecomputeTotal()
	return item, nil
}

// RecomputeTotal sums loaded line items into the stored total
func (i *Invoice) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range i.Items {
		total = total.Add(item.Amount)
	}
	i.Total = total
	i.UpdatedAt = time.Now()
}

// Send marks the invoice sent and starts the due clock
func (i *Invoice) Send(dueInDays int) error {
	if i.Status != InvoiceStatusDraft {
		return shared.ErrInvalidState
	}
	now := time.Now()
	i.Status = InvoiceStatusSent
	i.IssuedAt = &now
	if dueInDays > 0 {
		due := now.AddDate(0, 0, dueInDays)
		i.DueAt = &due
	}
	i.UpdatedAt = now
	i.IncrementVersion()
	i.AddDomainEvent(NewInvoiceSentEvent(i))
	return nil
}

// MarkPaid records full payment
func (i *Invoice) MarkPaid() error {
	if i.Status != InvoiceStatusSent && i.Status != InvoiceStatusOverdue {
		return shared.ErrInvalidState
	}
	now := time.Now()
	i.Status = InvoiceStatusPaid
	i.PaidAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()
	return nil
}

// MarkOverdue flags a sent invoice past its due date
func (i *Invoice) MarkOverdue() error {
	if i.Status != InvoiceStatusSent {
		return shared.ErrInvalidState
	}
	if i.DueAt == nil || time.Now().Before(*i.DueAt) {
		return shared.NewDomainError("NOT_DUE", "Invoice is not past due")
	}
	i.Status = InvoiceStatusOverdue
	i.UpdatedAt = time.Now()
	return nil
}

// Void cancels the invoice
func (i *Invoice) Void() error {
	if i.Status == InvoiceStatusPaid {
		return shared.ErrInvalidState
	}
	i.Status = InvoiceStatusVoid
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// NextInvoiceNumber formats a sequential invoice number
func NextInvoiceNumber(seq int) string {
	return fmt.Sprintf("INV-%06d", seq)
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	shared.TenantRepository[Invoice]

	// Search matches number or notes case-insensitively
	Search(ctx context.Context, tenantID uuid.UUID, term string) ([]Invoice, error)

	// FindByClient lists invoices of one client
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByStatus lists invoices in the given status
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status InvoiceStatus, filter shared.Filter) ([]Invoice, error)

	// CountForTenantAll counts every invoice ever issued, used for numbering
	CountForTenantAll(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// InvoiceItemRepository defines the interface for invoice line items
type InvoiceItemRepository interface {
	shared.TenantRepository[InvoiceItem]

	// FindByInvoice lists line items of one invoice
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]InvoiceItem, error)
}
