package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pitchline/pitchline-api/internal/http/middleware"
	"github.com/pitchline/pitchline-api/internal/service"
)

// DashboardHandler serves tenant aggregates and the caller's profile.
type DashboardHandler struct {
	Dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	stats, err := h.Dashboard.Stats(c.Request.Context(), grant.TenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Me returns the authenticated principal and the tenant the request
// was granted for.
func (h *DashboardHandler) Me(c *gin.Context) {
	grant, _ := middleware.GetGrant(c)
	principal, _ := middleware.GetPrincipal(c)
	c.JSON(http.StatusOK, gin.H{
		"principal": principal,
		"tenantId":  grant.TenantID,
	})
}
