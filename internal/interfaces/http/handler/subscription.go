package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/jobsight/backend/internal/application/billing"
)

// SubscriptionHandler handles plan subscription endpoints backed by the
// payment provider.
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *billingapp.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService *billingapp.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// StartCheckout opens a hosted checkout session for a paid plan
func (h *SubscriptionHandler) StartCheckout(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req billingapp.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.subscriptionService.StartCheckout(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Portal opens a hosted billing portal session
func (h *SubscriptionHandler) Portal(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.PortalSession(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetCurrent returns the business's subscription mirror
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	resp, err := h.subscriptionService.GetCurrent(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels the subscription, immediately or at period end
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req billingapp.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.subscriptionService.Cancel(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
