package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courthub/service-booking/internal/application"
	"github.com/courthub/service-booking/internal/domain/payment"
	"github.com/courthub/service-booking/pkg/auth"
	"github.com/courthub/service-booking/pkg/middleware"
	"github.com/courthub/service-booking/pkg/response"
)

// PaymentHandler handles HTTP requests for the payment flow.
type PaymentHandler struct {
	service *application.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers payment routes. Paying for a booking requires
// membership, which an approval grants.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware(jwtManager))
	{
		payments.POST("/intent", middleware.RequireRole(auth.RoleMember, auth.RoleAdmin), h.CreatePaymentIntent)
		payments.POST("/confirm", middleware.RequireRole(auth.RoleMember, auth.RoleAdmin), h.ConfirmPayment)
		payments.GET("/history", h.GetPaymentHistory)
	}
}

// CreatePaymentIntent handles POST /api/v1/payments/intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.CreatePaymentIntent(c.Request.Context(), email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

// ConfirmPayment handles POST /api/v1/payments/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.ConfirmPayment(c.Request.Context(), email, req)
	if err != nil {
		writePaymentError(c, err)
		return
	}
	response.Success(c, dto)
}

// GetPaymentHistory handles GET /api/v1/payments/history
func (h *PaymentHandler) GetPaymentHistory(c *gin.Context) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	dtos, err := h.service.GetPaymentHistory(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// writePaymentError distinguishes the two reconciliation failure classes.
// A failed charge is retryable by the client; a recorded-but-not-persisted
// charge is a server-side incident and must read that way.
func writePaymentError(c *gin.Context, err error) {
	var recErr *payment.ReconciliationError
	if errors.As(err, &recErr) {
		switch recErr.Kind {
		case payment.KindPaymentFailed:
			c.JSON(http.StatusPaymentRequired, gin.H{
				"success": false,
				"code":    string(recErr.Kind),
				"error":   "payment failed, please try again",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"code":    string(recErr.Kind),
				"error":   "payment was charged but could not be recorded, support has been notified",
			})
		}
		return
	}

	var mismatch *payment.AmountMismatchError
	if errors.As(err, &mismatch) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"code":    "amount_mismatch",
			"error":   "charged amount does not match the quoted payable",
		})
		return
	}

	response.Error(c, err)
}
