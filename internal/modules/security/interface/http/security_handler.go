package handler

import (
	"context"

	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/security/application/dto/request"
	"EDT/internal/modules/security/application/service"
	"EDT/internal/modules/security/infrastructure/captcha"
	"EDT/pkg/back"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CaptchaVerifier 人机验证
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string, remoteIP string) (*captcha.Result, error)
}

type SecurityHandler struct {
	svc     service.SecurityService
	captcha CaptchaVerifier
}

func NewSecurityHandler(svc service.SecurityService, verifier CaptchaVerifier) *SecurityHandler {
	return &SecurityHandler{svc: svc, captcha: verifier}
}

// Register 挂载需要鉴权的 /security 路由
func (h *SecurityHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/security")
	g.POST("/sign-in", h.SignIn)
	g.POST("/sign-out", h.SignOut)
	g.GET("/sessions", h.ListSessions)
	g.DELETE("/sessions/:id", h.TerminateSession)
	g.GET("/activity", h.ListActivity)
	g.GET("/settings", h.GetSettings)
	g.PUT("/settings", h.UpdateSettings)
}

func clientInfo(c *gin.Context) (request.ClientInfo, bool) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return request.ClientInfo{}, false
	}
	return request.ClientInfo{
		UserID:       uuid,
		SessionToken: jwt.SessionToken(c),
		UserAgent:    c.Request.UserAgent(),
		IpAddress:    c.ClientIP(),
	}, true
}

// SignIn POST /api/security/sign-in，登录成功后由客户端调用
func (h *SecurityHandler) SignIn(c *gin.Context) {
	client, ok := clientInfo(c)
	if !ok {
		return
	}
	data, err := h.svc.SignIn(c.Request.Context(), client)
	back.Result(c, data, err)
}

func (h *SecurityHandler) SignOut(c *gin.Context) {
	client, ok := clientInfo(c)
	if !ok {
		return
	}
	err := h.svc.SignOut(c.Request.Context(), client)
	back.Result(c, gin.H{"signed_out": err == nil}, err)
}

func (h *SecurityHandler) ListSessions(c *gin.Context) {
	client, ok := clientInfo(c)
	if !ok {
		return
	}
	data, err := h.svc.ListSessions(c.Request.Context(), client)
	back.Result(c, data, err)
}

// TerminateSession DELETE /api/security/sessions/:id
func (h *SecurityHandler) TerminateSession(c *gin.Context) {
	client, ok := clientInfo(c)
	if !ok {
		return
	}
	err := h.svc.TerminateSession(c.Request.Context(), client, c.Param("id"))
	back.Result(c, gin.H{"id": c.Param("id")}, err)
}

func (h *SecurityHandler) ListActivity(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.ListActivity(c.Request.Context(), uuid)
	back.Result(c, data, err)
}

func (h *SecurityHandler) GetSettings(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.GetSettings(c.Request.Context(), uuid)
	back.Result(c, data, err)
}

func (h *SecurityHandler) UpdateSettings(c *gin.Context) {
	client, ok := clientInfo(c)
	if !ok {
		return
	}
	var req request.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn("security settings bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.UpdateSettings(c.Request.Context(), client, req)
	back.Result(c, data, err)
}

// VerifyCaptcha POST /api/auth/verify-captcha，无需登录
func (h *SecurityHandler) VerifyCaptcha(c *gin.Context) {
	var req request.CaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.captcha.Verify(c.Request.Context(), req.Token, c.ClientIP())
	back.Result(c, data, err)
}
