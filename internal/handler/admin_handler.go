package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courthub/service-booking/internal/application"
	"github.com/courthub/service-booking/pkg/auth"
	"github.com/courthub/service-booking/pkg/middleware"
	"github.com/courthub/service-booking/pkg/response"
)

// AdminHandler handles the admin dashboard endpoints: booking queue,
// payment overview, members and announcements.
type AdminHandler struct {
	bookingService      *application.BookingService
	paymentService      *application.PaymentService
	memberService       *application.MemberService
	announcementService *application.AnnouncementService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	bookingService *application.BookingService,
	paymentService *application.PaymentService,
	memberService *application.MemberService,
	announcementService *application.AnnouncementService,
) *AdminHandler {
	return &AdminHandler{
		bookingService:      bookingService,
		paymentService:      paymentService,
		memberService:       memberService,
		announcementService: announcementService,
	}
}

// RegisterRoutes registers admin routes. Announcements are readable by any
// authenticated user; everything else is admin-only.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	announcements := r.Group("/announcements")
	announcements.Use(authMW)
	{
		announcements.GET("", h.ListAnnouncements)
		announcements.POST("", adminRole, h.CreateAnnouncement)
		announcements.PUT("/:id", adminRole, h.UpdateAnnouncement)
		announcements.DELETE("/:id", adminRole, h.DeleteAnnouncement)
	}

	admin := r.Group("/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/payments", h.ListPayments)
		admin.GET("/stats/payments", h.PaymentStats)
		admin.GET("/members", h.ListMembers)
		admin.DELETE("/members/:id", h.RemoveMember)
	}
}

// ListBookings handles GET /api/v1/admin/bookings
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := pagination(c)

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, bookings, total, page, limit)
}

// ListPayments handles GET /api/v1/admin/payments
func (h *AdminHandler) ListPayments(c *gin.Context) {
	page, limit := pagination(c)

	payments, total, err := h.paymentService.ListAllPayments(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, payments, total, page, limit)
}

// PaymentStats handles GET /api/v1/admin/stats/payments
func (h *AdminHandler) PaymentStats(c *gin.Context) {
	stats, err := h.paymentService.GetPaymentStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// ListMembers handles GET /api/v1/admin/members
func (h *AdminHandler) ListMembers(c *gin.Context) {
	members, err := h.memberService.ListMembers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

// RemoveMember handles DELETE /api/v1/admin/members/:id
func (h *AdminHandler) RemoveMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member ID")
		return
	}

	if err := h.memberService.RemoveMember(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListAnnouncements handles GET /api/v1/announcements
func (h *AdminHandler) ListAnnouncements(c *gin.Context) {
	dtos, err := h.announcementService.ListAnnouncements(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// CreateAnnouncement handles POST /api/v1/announcements
func (h *AdminHandler) CreateAnnouncement(c *gin.Context) {
	var req application.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.announcementService.CreateAnnouncement(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

// UpdateAnnouncement handles PUT /api/v1/announcements/:id
func (h *AdminHandler) UpdateAnnouncement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid announcement ID")
		return
	}

	var req application.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.announcementService.UpdateAnnouncement(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// DeleteAnnouncement handles DELETE /api/v1/announcements/:id
func (h *AdminHandler) DeleteAnnouncement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid announcement ID")
		return
	}

	if err := h.announcementService.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
