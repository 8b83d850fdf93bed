package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courthub/service-booking/internal/application"
	"github.com/courthub/service-booking/pkg/auth"
	"github.com/courthub/service-booking/pkg/middleware"
	"github.com/courthub/service-booking/pkg/response"
)

// CouponHandler handles HTTP requests for coupon management and validation.
type CouponHandler struct {
	service *application.CouponService
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *application.CouponService) *CouponHandler {
	return &CouponHandler{service: service}
}

// RegisterRoutes registers coupon routes. Validation is open to any
// authenticated user; management is admin-only.
func (h *CouponHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	coupons := r.Group("/coupons")
	coupons.Use(middleware.AuthMiddleware(jwtManager))
	{
		coupons.POST("/validate", h.ValidateCoupon)
		coupons.GET("/offers", h.ListActiveOffers)

		coupons.GET("", middleware.RequireRole(auth.RoleAdmin), h.ListCoupons)
		coupons.POST("", middleware.RequireRole(auth.RoleAdmin), h.CreateCoupon)
		coupons.PUT("/:id", middleware.RequireRole(auth.RoleAdmin), h.UpdateCoupon)
		coupons.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), h.DeleteCoupon)
	}
}

// ValidateCoupon handles POST /api/v1/coupons/validate
//
// The response always reports exactly one status; a non-valid code is a
// 200 with that status, not an HTTP error, so the client can show the
// matching message inline.
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req application.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.ValidateCoupon(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// ListActiveOffers handles GET /api/v1/coupons/offers
func (h *CouponHandler) ListActiveOffers(c *gin.Context) {
	dtos, err := h.service.ListActiveOffers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// ListCoupons handles GET /api/v1/coupons
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	dtos, err := h.service.ListCoupons(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// CreateCoupon handles POST /api/v1/coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req application.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

// UpdateCoupon handles PUT /api/v1/coupons/:id
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon ID")
		return
	}

	var req application.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateCoupon(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// DeleteCoupon handles DELETE /api/v1/coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon ID")
		return
	}

	if err := h.service.DeleteCoupon(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
