package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courthub/service-booking/internal/application"
	"github.com/courthub/service-booking/internal/domain/booking"
	"github.com/courthub/service-booking/pkg/auth"
	"github.com/courthub/service-booking/pkg/middleware"
	"github.com/courthub/service-booking/pkg/response"
)

// BookingHandler handles HTTP requests for the booking lifecycle.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers booking routes. Approval and rejection are
// admin actions; everything else belongs to the authenticated user.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware(jwtManager))
	{
		bookings.POST("", h.SubmitBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)

		bookings.POST("/:id/approve", middleware.RequireRole(auth.RoleAdmin), h.ApproveBooking)
		bookings.POST("/:id/reject", middleware.RequireRole(auth.RoleAdmin), h.RejectBooking)
	}
}

// SubmitBooking handles POST /api/v1/bookings
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.SubmitBooking(c.Request.Context(), email, req)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	response.Created(c, dto)
}

// ListMyBookings handles GET /api/v1/bookings
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	dtos, err := h.service.ListUserBookings(c.Request.Context(), email, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// GetBooking handles GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	dto, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	email, _ := middleware.GetUserEmail(c)
	if dto.UserEmail != email && middleware.GetUserRole(c) != auth.RoleAdmin {
		response.Forbidden(c, "booking belongs to another user")
		return
	}
	response.Success(c, dto)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	email, _ := middleware.GetUserEmail(c)
	if middleware.GetUserRole(c) == auth.RoleAdmin {
		email = ""
	}

	dto, err := h.service.CancelBooking(c.Request.Context(), id, email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// ApproveBooking handles POST /api/v1/bookings/:id/approve
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	dto, err := h.service.ApproveBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// RejectBooking handles POST /api/v1/bookings/:id/reject
func (h *BookingHandler) RejectBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	dto, err := h.service.RejectBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// writeBookingError maps submission-specific domain errors before falling
// back to the generic mapping. A conflict tells the client to re-fetch
// availability and let the user reselect.
func writeBookingError(c *gin.Context, err error) {
	var conflictErr *booking.SubmissionConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": conflictErr.Error()})
		return
	}

	var invalidSlot *booking.InvalidSlotError
	var emptySel *booking.EmptySelectionError
	var pastDate *booking.PastDateError
	var noDate *booking.NoDateError
	if errors.As(err, &invalidSlot) || errors.As(err, &emptySel) || errors.As(err, &pastDate) || errors.As(err, &noDate) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
		return
	}

	response.Error(c, err)
}
