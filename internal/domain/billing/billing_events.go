package billing

import (
	"github.com/jobsight/backend/internal/domain/shared"
)

const (
	EventTypeInvoiceCreated = "billing.invoice.created"
	EventTypeInvoiceSent    = "billing.invoice.sent"
)

// InvoiceCreatedEvent is raised when a draft invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewInvoiceCreatedEvent creates an InvoiceCreatedEvent
func NewInvoiceCreatedEvent(i *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, "Invoice", i.ID, i.TenantID),
		Number:          i.Number,
	}
}

// InvoiceSentEvent is raised when an invoice is sent to the client;
// the notification dispatcher listens for it.
type InvoiceSentEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Total  string `json:"total"`
}

// NewInvoiceSentEvent creates an InvoiceSentEvent
func NewInvoiceSentEvent(i *Invoice) *InvoiceSentEvent {
	return &InvoiceSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceSent, "Invoice", i.ID, i.TenantID),
		Number:          i.Number,
		Total:           i.Total.StringFixed(2),
	}
}
