package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/courthub/service-booking/internal/application"
	"github.com/courthub/service-booking/pkg/auth"
	"github.com/courthub/service-booking/pkg/middleware"
	"github.com/courthub/service-booking/pkg/response"
)

// CourtHandler handles HTTP requests for the court catalog.
type CourtHandler struct {
	service *application.CourtService
}

// NewCourtHandler creates a new CourtHandler.
func NewCourtHandler(service *application.CourtService) *CourtHandler {
	return &CourtHandler{service: service}
}

// RegisterRoutes registers court routes. Browsing the catalog requires a
// login; mutating it requires the admin role.
func (h *CourtHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	courts := r.Group("/courts")
	courts.Use(middleware.AuthMiddleware(jwtManager))
	{
		courts.GET("", h.ListCourts)
		courts.GET("/:id", h.GetCourt)
		courts.GET("/:id/slots", h.GetAvailableSlots)

		courts.POST("", middleware.RequireRole(auth.RoleAdmin), h.CreateCourt)
		courts.PUT("/:id", middleware.RequireRole(auth.RoleAdmin), h.UpdateCourt)
		courts.DELETE("/:id", middleware.RequireRole(auth.RoleAdmin), h.DeleteCourt)
	}
}

// ListCourts handles GET /api/v1/courts
func (h *CourtHandler) ListCourts(c *gin.Context) {
	page, limit := pagination(c)

	courts, total, err := h.service.ListCourts(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, courts, total, page, limit)
}

// GetCourt handles GET /api/v1/courts/:id
func (h *CourtHandler) GetCourt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid court ID")
		return
	}

	dto, err := h.service.GetCourt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// GetAvailableSlots handles GET /api/v1/courts/:id/slots
func (h *CourtHandler) GetAvailableSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid court ID")
		return
	}

	slots, err := h.service.GetAvailableSlots(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, slots)
}

// CreateCourt handles POST /api/v1/courts
func (h *CourtHandler) CreateCourt(c *gin.Context) {
	var req application.CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.CreateCourt(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto)
}

// UpdateCourt handles PUT /api/v1/courts/:id
func (h *CourtHandler) UpdateCourt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid court ID")
		return
	}

	var req application.UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.UpdateCourt(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto)
}

// DeleteCourt handles DELETE /api/v1/courts/:id
func (h *CourtHandler) DeleteCourt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid court ID")
		return
	}

	if err := h.service.DeleteCourt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// pagination reads and clamps the page/limit query parameters.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
