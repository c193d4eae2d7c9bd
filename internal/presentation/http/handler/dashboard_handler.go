package handler

import (
	"github.com/fuelsight/fuelsight-api/internal/application/service"
	"github.com/fuelsight/fuelsight-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard and comparison HTTP requests
type DashboardHandler struct {
	dashboardService  *service.DashboardService
	comparisonService *service.ComparisonService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboardService *service.DashboardService,
	comparisonService *service.ComparisonService,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:  dashboardService,
		comparisonService: comparisonService,
	}
}

// Stats returns aggregate station statistics
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard statistics retrieved", stats)
}

// Comparison compares the two most recent receipts
func (h *DashboardHandler) Comparison(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := h.comparisonService.CompareLatest(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Comparison computed", summary)
}
