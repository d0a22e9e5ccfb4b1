package handler

import (
	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/goal/application/dto/request"
	"EDT/internal/modules/goal/application/service"
	"EDT/internal/modules/goal/domain/repository"
	"EDT/pkg/back"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GoalHandler struct {
	svc service.GoalService
}

func NewGoalHandler(svc service.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

// List GET /api/goals?status=&category=
func (h *GoalHandler) List(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var q request.GoalListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		zlog.Warn("goal list bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	filter := repository.ListFilter{Status: q.Status, Category: q.Category}
	data, err := h.svc.List(c.Request.Context(), uuid, filter)
	back.Result(c, data, err)
}

// Create POST /api/goals
func (h *GoalHandler) Create(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("goal create bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Create(c.Request.Context(), uuid, req)
	back.Created(c, data, err)
}

// Get GET /api/goals/:id
func (h *GoalHandler) Get(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.Get(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, data, err)
}

// Update PUT /api/goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("goal update bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Update(c.Request.Context(), uuid, c.Param("id"), req)
	back.Result(c, data, err)
}

// Delete DELETE /api/goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")
	err := h.svc.Delete(c.Request.Context(), uuid, id)
	back.Result(c, gin.H{"id": id}, err)
}
