package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type validatedRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=2"`
}

func newValidationTestRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req validatedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestHandleValidationError_FieldDetails(t *testing.T) {
	router := newValidationTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":"not-an-email","name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "VALIDATION_FAILED")
	// Field names come from json tags, not Go struct fields
	assert.Contains(t, body, `"field":"email"`)
	assert.Contains(t, body, `"field":"name"`)
	assert.Contains(t, body, "Must be a valid email address")
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	router := newValidationTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BAD_REQUEST")
}

func TestHandleValidationError_ValidRequest(t *testing.T) {
	router := newValidationTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"email":"owner@example.com","name":"Acme"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
