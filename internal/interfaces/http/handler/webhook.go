package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	billingapp "github.com/jobsight/backend/internal/application/billing"
	"github.com/jobsight/backend/internal/interfaces/http/dto"
	"github.com/jobsight/backend/internal/interfaces/http/middleware"
)

// StripeWebhookHandler receives payment provider webhooks. The endpoint is
// unauthenticated; the request is trusted only after its signature checks
// out against the webhook secret.
type StripeWebhookHandler struct {
	BaseHandler
	webhookService *billingapp.WebhookService
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler
func NewStripeWebhookHandler(webhookService *billingapp.WebhookService) *StripeWebhookHandler {
	return &StripeWebhookHandler{webhookService: webhookService}
}

// Handle verifies and processes one webhook delivery. Signature failures
// return 400 so the provider retries; everything else is acknowledged.
func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		requestID := c.GetString(middleware.RequestIDContextKey)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrCodeBadRequest, "Failed to read request body", requestID,
		))
		return
	}

	if err := h.webhookService.Process(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
