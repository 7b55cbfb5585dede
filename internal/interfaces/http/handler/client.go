package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/jobsight/backend/internal/application/directory"
)

// ClientHandler handles client directory endpoints, including nested
// contacts and interaction history.
type ClientHandler struct {
	BaseHandler
	clientService  *directoryapp.ClientService
	contactService *directoryapp.ContactService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(
	clientService *directoryapp.ClientService,
	contactService *directoryapp.ContactService,
) *ClientHandler {
	return &ClientHandler{
		clientService:  clientService,
		contactService: contactService,
	}
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var req directoryapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.clientService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List retrieves clients with filtering and pagination
func (h *ClientHandler) List(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	var filter directoryapp.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	clients, total, err := h.clientService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, clients, filter.Page, filter.PageSize, total)
}

// Search performs a quick lookup by name, email or city
func (h *ClientHandler) Search(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}

	clients, err := h.clientService.Search(c.Request.Context(), tenantID, c.Query("q"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, clients)
}

// GetByID retrieves a client by ID
func (h *ClientHandler) GetByID(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.clientService.GetByID(c.Request.Context(), tenantID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update applies partial changes to a client
func (h *ClientHandler) Update(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req directoryapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.clientService.Update(c.Request.Context(), tenantID, clientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Archive archives a client without deleting its history
func (h *ClientHandler) Archive(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.clientService.Archive(c.Request.Context(), tenantID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a client
func (h *ClientHandler) Delete(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), tenantID, clientID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateContact adds a contact person under a client
func (h *ClientHandler) CreateContact(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req directoryapp.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.contactService.CreateContact(c.Request.Context(), tenantID, clientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListContacts lists a client's contact people
func (h *ClientHandler) ListContacts(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), tenantID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, contacts)
}

// UpdateContact applies partial changes to a contact
func (h *ClientHandler) UpdateContact(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	contactID, ok := h.parseUUIDParam(c, "contact_id")
	if !ok {
		return
	}

	var req directoryapp.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.contactService.UpdateContact(c.Request.Context(), tenantID, contactID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteContact removes a contact
func (h *ClientHandler) DeleteContact(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	contactID, ok := h.parseUUIDParam(c, "contact_id")
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(c.Request.Context(), tenantID, contactID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// LogInteraction records a call, email, meeting or site visit with a client
func (h *ClientHandler) LogInteraction(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req directoryapp.CreateInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.contactService.LogInteraction(c.Request.Context(), tenantID, clientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListInteractions lists a client's interaction history, newest first
func (h *ClientHandler) ListInteractions(c *gin.Context) {
	tenantID, ok := h.getTenantID(c)
	if !ok {
		return
	}
	clientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var filter directoryapp.InteractionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err)
		return
	}

	interactions, err := h.contactService.ListInteractions(c.Request.Context(), tenantID, clientID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, interactions)
}
