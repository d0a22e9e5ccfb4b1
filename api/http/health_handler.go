package http

import (
	"EDT/internal/initial"
	"EDT/pkg/back"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Database initial.ConnectionState `json:"database"`
	AIMode   string                  `json:"ai_mode"`
	Provider string                  `json:"provider,omitempty"`
	Cache    initial.ConnectionState `json:"cache"`
	DemoData bool                    `json:"demo_data"`
}

type HealthHandler struct {
	app *initial.App
}

func NewHealthHandler(app *initial.App) *HealthHandler {
	return &HealthHandler{app: app}
}

// Health GET /api/health，无需登录
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	back.Success(c, HealthStatus{
		Database: h.app.DatabaseState(ctx),
		AIMode:   h.app.AIMode(),
		Provider: h.app.ModelMeta.Provider,
		Cache:    h.app.CacheState(ctx),
		DemoData: h.app.DemoData,
	})
}
