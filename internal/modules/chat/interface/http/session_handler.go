package handler

import (
	"EDT/internal/middleware/jwt"
	chatRequest "EDT/internal/modules/chat/application/dto/request"
	"EDT/internal/modules/chat/application/service"
	"EDT/pkg/back"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// ListSessions GET /api/chat/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.ListSessions(c.Request.Context(), uuid)
	back.Result(c, data, err)
}

// CreateSession POST /api/chat/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req chatRequest.CreateSessionRequest
	// 允许空请求体
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			zlog.Warn("chat session bind error", zap.Error(err))
			back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
			return
		}
	}
	data, err := h.svc.CreateSession(c.Request.Context(), uuid, req)
	back.Created(c, data, err)
}

// RenameSession PUT /api/chat/sessions/:id
func (h *SessionHandler) RenameSession(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req chatRequest.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("chat session bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.RenameSession(c.Request.Context(), uuid, c.Param("id"), req.Title)
	back.Result(c, data, err)
}

// DeleteSession DELETE /api/chat/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")
	err := h.svc.DeleteSession(c.Request.Context(), uuid, id)
	back.Result(c, gin.H{"id": id}, err)
}

// ListMessages GET /api/chat/sessions/:id/messages
func (h *SessionHandler) ListMessages(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.ListMessages(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, data, err)
}

// AppendMessage POST /api/chat/sessions/:id/messages
func (h *SessionHandler) AppendMessage(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req chatRequest.AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("chat message bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.AppendMessage(c.Request.Context(), uuid, c.Param("id"), req)
	back.Created(c, data, err)
}
