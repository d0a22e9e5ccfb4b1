package handler

import (
	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/dashboard/application/service"
	"EDT/pkg/back"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.Stats)
}

// Stats GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	back.Success(c, h.svc.Stats(c.Request.Context(), uuid))
}
