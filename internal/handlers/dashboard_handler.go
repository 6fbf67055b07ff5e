package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onewave/qrcheckin-backend/internal/services"
)

// DashboardHandler serves the privileged statistics endpoints.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns today's aggregate check-in counters
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// Realtime returns the live checked-in / pending split for today's event
// GET /api/realtime/checkin
func (h *DashboardHandler) Realtime(c *gin.Context) {
	data, err := h.dashboardService.Realtime(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
