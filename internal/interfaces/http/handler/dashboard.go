package handler

import (
	"github.com/gin-gonic/gin"
	tourismapp "github.com/tourdesk/backend/internal/application/tourism"
	"github.com/tourdesk/backend/internal/interfaces/http/dto"
)

// DashboardHandler serves the dashboard and form metadata
type DashboardHandler struct {
	BaseHandler
	dashboardService *tourismapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *tourismapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	h.Success(c, dto.NewDashboardStatsResponse(h.dashboardService.Stats(c.Request.Context())))
}

// Categories handles GET /meta/categories
func (h *DashboardHandler) Categories(c *gin.Context) {
	h.Success(c, dto.NewCategoriesResponse())
}
