package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/contentdesk/contentdesk/internal/console"
	"github.com/contentdesk/contentdesk/internal/middleware"
)

// DashboardHandler serves the overview statistics.
type DashboardHandler struct {
	dashboard *console.Dashboard
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *console.Dashboard, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Stats handles GET /v1/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Load(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		h.logger.Error("failed to load dashboard stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
