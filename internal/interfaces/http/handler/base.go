// Package handler contains the gin HTTP handlers of the sync API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/novizna/ninjasync/internal/domain/erp"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/interfaces/http/dto"
	"github.com/novizna/ninjasync/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Message sends a success response carrying only a message
func (h *BaseHandler) Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewMessageResponse(message))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 accepted response for queued work
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindingError sends the standard validation error response
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// domainErrorCode buckets the sync and document sentinels into API codes.
var domainErrorCode = []struct {
	err  error
	code string
}{
	{syncdomain.ErrEntityTypeDisabled, dto.ErrCodeSyncDisabled},
	{syncdomain.ErrDirectionDisabled, dto.ErrCodeSyncDisabled},
	{syncdomain.ErrNoCompanyMapping, dto.ErrCodeNoMapping},
	{syncdomain.ErrNoDefaultMapping, dto.ErrCodeNoMapping},
	{syncdomain.ErrMappingNotFound, dto.ErrCodeNotFound},
	{syncdomain.ErrCredentialNotFound, dto.ErrCodeNotFound},
	{syncdomain.ErrLogEntryNotFound, dto.ErrCodeNotFound},
	{syncdomain.ErrMappingDuplicateCompany, dto.ErrCodeConflict},
	{syncdomain.ErrMappingDuplicateNinjaID, dto.ErrCodeConflict},
	{syncdomain.ErrMappingMultipleDefaults, dto.ErrCodeConflict},
	{syncdomain.ErrMappingInvalidCompany, dto.ErrCodeValidation},
	{syncdomain.ErrMappingInvalidNinjaID, dto.ErrCodeValidation},
	{syncdomain.ErrUnknownEntityType, dto.ErrCodeBadRequest},
	{syncdomain.ErrAlreadySynced, dto.ErrCodeAlreadySynced},
	{syncdomain.ErrDocumentLocked, dto.ErrCodeDocumentLocked},
	{syncdomain.ErrNotConfigured, dto.ErrCodeNotConfigured},
	{syncdomain.ErrCompanyDisabled, dto.ErrCodeNotConfigured},
	{syncdomain.ErrMissingAPIToken, dto.ErrCodeNotConfigured},
	{syncdomain.ErrMissingBaseURL, dto.ErrCodeNotConfigured},
	{syncdomain.ErrMissingClientLink, dto.ErrCodeNoMapping},
	{syncdomain.ErrRequestFailed, dto.ErrCodeRemoteFailed},
	{syncdomain.ErrRemoteUnavailable, dto.ErrCodeRemoteFailed},
	{syncdomain.ErrInvalidResponse, dto.ErrCodeRemoteFailed},
	{erp.ErrCustomerNotFound, dto.ErrCodeNotFound},
	{erp.ErrItemNotFound, dto.ErrCodeNotFound},
	{erp.ErrInvoiceNotFound, dto.ErrCodeNotFound},
	{erp.ErrQuotationNotFound, dto.ErrCodeNotFound},
	{erp.ErrPaymentNotFound, dto.ErrCodeNotFound},
	{erp.ErrContactNotFound, dto.ErrCodeNotFound},
}

// HandleError converts a domain error into the matching HTTP response
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	for _, m := range domainErrorCode {
		if errors.Is(err, m.err) {
			h.ErrorWithCode(c, m.code, err.Error())
			return
		}
	}
	h.InternalError(c, "an unexpected error occurred")
}
