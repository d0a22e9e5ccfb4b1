package handler

import (
	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/techlog/application/dto/request"
	"EDT/internal/modules/techlog/application/service"
	"EDT/pkg/back"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TechnicalLogHandler struct {
	svc service.TechnicalLogService
}

func NewTechnicalLogHandler(svc service.TechnicalLogService) *TechnicalLogHandler {
	return &TechnicalLogHandler{svc: svc}
}

// List GET /api/logs?system=&tag=
func (h *TechnicalLogHandler) List(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.List(c.Request.Context(), uuid, c.Query("system"), c.Query("tag"))
	back.Result(c, data, err)
}

func (h *TechnicalLogHandler) Create(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.TechnicalLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("technical log bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Create(c.Request.Context(), uuid, req)
	back.Created(c, data, err)
}

func (h *TechnicalLogHandler) Get(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.Get(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, data, err)
}

func (h *TechnicalLogHandler) Update(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.TechnicalLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("technical log bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Update(c.Request.Context(), uuid, c.Param("id"), req)
	back.Result(c, data, err)
}

func (h *TechnicalLogHandler) Delete(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")
	err := h.svc.Delete(c.Request.Context(), uuid, id)
	back.Result(c, gin.H{"id": id}, err)
}
