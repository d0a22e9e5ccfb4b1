package handler

import (
	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/user/application/dto/request"
	"EDT/internal/modules/user/application/service"
	"EDT/pkg/back"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserProfileHandler struct {
	svc service.UserProfileService
}

func NewUserProfileHandler(svc service.UserProfileService) *UserProfileHandler {
	return &UserProfileHandler{svc: svc}
}

// Get GET /api/profile
func (h *UserProfileHandler) Get(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.Get(c.Request.Context(), uuid)
	back.Result(c, data, err)
}

// Save PUT /api/profile
func (h *UserProfileHandler) Save(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("profile bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.Save(c.Request.Context(), uuid, req)
	back.Result(c, data, err)
}
