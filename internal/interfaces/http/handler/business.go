package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/jobsight/backend/internal/application/identity"
)

// BusinessHandler handles business onboarding and settings. Every endpoint
// operates on the business owned by the authenticated user; there is no
// business ID in the path.
type BusinessHandler struct {
	BaseHandler
	businessService *identityapp.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businessService *identityapp.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Create onboards the caller's business. A user owns at most one.
func (h *BusinessHandler) Create(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req identityapp.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.businessService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns the caller's business
func (h *BusinessHandler) Get(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	resp, err := h.businessService.GetByOwner(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies partial changes to the caller's business
func (h *BusinessHandler) Update(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	var req identityapp.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.businessService.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel closes the caller's business account
func (h *BusinessHandler) Cancel(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	if err := h.businessService.Cancel(c.Request.Context(), userID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
