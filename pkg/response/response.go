package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courthub/service-booking/pkg/domain"
)

// envelope is the uniform response body.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Error: message})
}

// Unauthorized writes a 401.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, envelope{Success: false, Error: message})
}

// Forbidden writes a 403.
func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, envelope{Success: false, Error: message})
}

// paginatedEnvelope wraps a page of results with its totals.
type paginatedEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}

// Paginated writes a 200 with page metadata.
func Paginated(c *gin.Context, data interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, paginatedEnvelope{Success: true, Data: data, Total: total, Page: page, Limit: limit})
}

// Error maps a domain error to the matching HTTP status.
func Error(c *gin.Context, err error) {
	var domErr *domain.DomainError
	if errors.As(err, &domErr) {
		switch {
		case errors.Is(domErr.Err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, envelope{Success: false, Error: domErr.Message})
		case errors.Is(domErr.Err, domain.ErrConflict):
			c.JSON(http.StatusConflict, envelope{Success: false, Error: domErr.Message})
		case errors.Is(domErr.Err, domain.ErrValidation), errors.Is(domErr.Err, domain.ErrInvalidState):
			c.JSON(http.StatusUnprocessableEntity, envelope{Success: false, Error: domErr.Message})
		case errors.Is(domErr.Err, domain.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, envelope{Success: false, Error: domErr.Message})
		default:
			c.JSON(http.StatusInternalServerError, envelope{Success: false, Error: domErr.Message})
		}
		return
	}
	c.JSON(http.StatusInternalServerError, envelope{Success: false, Error: err.Error()})
}
