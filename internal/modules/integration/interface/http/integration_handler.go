package handler

import (
	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/integration/application/dto/request"
	"EDT/internal/modules/integration/application/service"
	"EDT/pkg/back"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IntegrationHandler struct {
	svc service.IntegrationService
}

func NewIntegrationHandler(svc service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{svc: svc}
}

func (h *IntegrationHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/integrations")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/test", h.Test)
	g.POST("/:id/sync", h.Sync)
}

func (h *IntegrationHandler) List(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.List(c.Request.Context(), uuid)
	back.Result(c, data, err)
}

func (h *IntegrationHandler) Create(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.IntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("integration bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Create(c.Request.Context(), uuid, req)
	back.Created(c, data, err)
}

func (h *IntegrationHandler) Get(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.Get(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, data, err)
}

func (h *IntegrationHandler) Update(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.IntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("integration bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Update(c.Request.Context(), uuid, c.Param("id"), req)
	back.Result(c, data, err)
}

func (h *IntegrationHandler) Delete(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	err := h.svc.Delete(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, gin.H{"id": c.Param("id")}, err)
}

// Test POST /api/integrations/:id/test
func (h *IntegrationHandler) Test(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.Test(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, data, err)
}

// Sync POST /api/integrations/:id/sync
func (h *IntegrationHandler) Sync(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.Sync(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, data, err)
}
