package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/shared"
	"github.com/jobsight/backend/internal/infrastructure/logger"
	"github.com/jobsight/backend/internal/interfaces/http/dto"
	"github.com/jobsight/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides shared helpers for all HTTP handlers
type BaseHandler struct{}

// Success writes a 200 response with the given payload
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta writes a 200 list response with pagination metadata
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, page, pageSize int, total int64) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, dto.NewMeta(page, pageSize, total)))
}

// Created writes a 201 response with the given payload
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response, formatting binding validation errors
// with per-field details.
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleDomainError maps a service error to an HTTP response. Domain errors
// keep their code and message; anything else is a masked 500.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	requestID := c.GetString(middleware.RequestIDContextKey)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message, requestID))
		return
	}

	logger.L(c.Request.Context()).Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.ErrCodeInternal, "An internal error occurred", requestID,
	))
}

// getTenantID returns the resolved business ID. Routes using it must sit
// behind middleware.RequireBusiness.
func (h *BaseHandler) getTenantID(c *gin.Context) (uuid.UUID, bool) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		requestID := c.GetString(middleware.RequestIDContextKey)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			shared.ErrTenantRequired.Code, shared.ErrTenantRequired.Message, requestID,
		))
		return uuid.Nil, false
	}
	return tenantID, true
}

// getUserID returns the authenticated user ID
func (h *BaseHandler) getUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetJWTUserID(c)
	if !ok {
		requestID := c.GetString(middleware.RequestIDContextKey)
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.ErrCodeUnauthorized, "Authentication required", requestID,
		))
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUIDParam parses a path parameter as a UUID, writing a 400 on failure
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		requestID := c.GetString(middleware.RequestIDContextKey)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrCodeBadRequest, "Invalid "+name+" parameter", requestID,
		))
		return uuid.Nil, false
	}
	return id, true
}
