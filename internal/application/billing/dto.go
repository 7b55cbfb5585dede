package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jobsight/backend/internal/domain/billing"
)

// InvoiceItemRequest is one billed line on a new invoice
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest creates a draft invoice. The number is assigned
// server-side and sequential per business.
type CreateInvoiceRequest struct {
	ClientID  uuid.UUID            `json:"client_id" binding:"required"`
	ProjectID *uuid.UUID           `json:"project_id"`
	Notes     string               `json:"notes" binding:"omitempty,max=2000"`
	Items     []InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
}

// SendInvoiceRequest marks an invoice sent
type SendInvoiceRequest struct {
	DueInDays int `json:"due_in_days" binding:"omitempty,min=0,max=365"`
}

// InvoiceListFilter holds query parameters for listing invoices
type InvoiceListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
	ClientID string `form:"client_id"`
}

// InvoiceItemResponse is the API representation of an InvoiceItem
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the API representation of an Invoice
type InvoiceResponse struct {
	ID        uuid.UUID             `json:"id"`
	Number    string                `json:"number"`
	ClientID  uuid.UUID             `json:"client_id"`
	ProjectID *uuid.UUID            `json:"project_id,omitempty"`
	Status    billing.InvoiceStatus `json:"status"`
	Total     decimal.Decimal       `json:"total"`
	IssuedAt  *time.Time            `json:"issued_at,omitempty"`
	DueAt     *time.Time            `json:"due_at,omitempty"`
	PaidAt    *time.Time            `json:"paid_at,omitempty"`
	Notes     string                `json:"notes"`
	Items     []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// ToInvoiceItemResponse converts an InvoiceItem to an InvoiceItemResponse
func ToInvoiceItemResponse(item *billing.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Amount:      item.Amount,
	}
}

// ToInvoiceItemResponses converts a slice of InvoiceItems
func ToInvoiceItemResponses(items []billing.InvoiceItem) []InvoiceItemResponse {
	responses := make([]InvoiceItemResponse, len(items))
	for i := range items {
		responses[i] = ToInvoiceItemResponse(&items[i])
	}
	return responses
}

// ToInvoiceResponse converts an Invoice to an InvoiceResponse
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:        inv.ID,
		Number:    inv.Number,
		ClientID:  inv.ClientID,
		ProjectID: inv.ProjectID,
		Status:    inv.Status,
		Total:     inv.Total,
		IssuedAt:  inv.IssuedAt,
		DueAt:     inv.DueAt,
		PaidAt:    inv.PaidAt,
		Notes:     inv.Notes,
		Items:     ToInvoiceItemResponses(inv.Items),
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of Invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// StartCheckoutRequest begins a paid-plan checkout
type StartCheckoutRequest struct {
	Plan string `json:"plan" binding:"required,oneof=starter pro"`
}

// CheckoutResponse carries the hosted checkout session to redirect to
type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// PortalResponse carries the hosted billing portal URL
type PortalResponse struct {
	URL string `json:"url"`
}

// CancelSubscriptionRequest cancels the business's subscription
type CancelSubscriptionRequest struct {
	AtPeriodEnd bool `json:"at_period_end"`
}

// SubscriptionResponse is the API representation of the subscription mirror
type SubscriptionResponse struct {
	Plan              string                     `json:"plan"`
	Status            billing.SubscriptionStatus `json:"status"`
	CurrentPeriodEnd  *time.Time                 `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool                       `json:"cancel_at_period_end"`
}

// ToSubscriptionResponse converts a Subscription mirror to a SubscriptionResponse
func ToSubscriptionResponse(sub *billing.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		Plan:              sub.Plan,
		Status:            sub.Status,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
}
