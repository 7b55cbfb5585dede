package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	billingapp "github.com/jobsight/backend/internal/application/billing"
)

// InvoiceHandler handles client invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create opens a draft invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.invoiceService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List retrieves invoices with filtering and pagination
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, filter.Page, filter.PageSize, total)
}

// GetByID retrieves an invoice with its line items
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.invoiceService.GetByID(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds a line item to a draft invoice
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.InvoiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.invoiceService.AddItem(c.Request.Context(), tenantID, invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem removes a line item from a draft invoice
func (h *InvoiceHandler) RemoveItem(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "item_id")
	if !ok {
		return
	}

	resp, err := h.invoiceService.RemoveItem(c.Request.Context(), tenantID, invoiceID, itemID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Send issues a draft invoice to the client
func (h *InvoiceHandler) Send(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.SendInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.invoiceService.Send(c.Request.Context(), tenantID, invoiceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkPaid records payment of a sent invoice
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.invoiceService.MarkPaid)
}

// MarkOverdue flags a sent invoice past its due date
func (h *InvoiceHandler) MarkOverdue(c *gin.Context) {
	h.transition(c, h.invoiceService.MarkOverdue)
}

// Void cancels an issued invoice while keeping its number
func (h *InvoiceHandler) Void(c *gin.Context) {
	h.transition(c, h.invoiceService.Void)
}

// Delete removes a draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), tenantID, invoiceID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *InvoiceHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, tenantID, invoiceID uuid.UUID) (*billingapp.InvoiceResponse, error),
) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	invoiceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := apply(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
