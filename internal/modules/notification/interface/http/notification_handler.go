package handler

import (
	"time"

	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/notification/application/service"
	"EDT/pkg/back"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// Register 挂载 /notifications 路由
func (h *NotificationHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/notifications")
	g.GET("", h.List)
	g.GET("/unread-count", h.UnreadCount)
	g.POST("/generate", h.Generate)
	g.POST("/read-all", h.MarkAllRead)
	g.POST("/:id/read", h.MarkRead)
	g.DELETE("/:id", h.Delete)
}

// List GET /api/notifications?unread=true
func (h *NotificationHandler) List(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.List(c.Request.Context(), uuid, c.Query("unread") == "true")
	back.Result(c, data, err)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	n, err := h.svc.CountUnread(c.Request.Context(), uuid)
	back.Result(c, gin.H{"unread": n}, err)
}

// Generate POST /api/notifications/generate
func (h *NotificationHandler) Generate(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.Generate(c.Request.Context(), uuid, time.Now().UTC())
	back.Result(c, data, err)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	err := h.svc.MarkRead(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, gin.H{"id": c.Param("id")}, err)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	n, err := h.svc.MarkAllRead(c.Request.Context(), uuid)
	back.Result(c, gin.H{"updated": n}, err)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	err := h.svc.Delete(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, gin.H{"id": c.Param("id")}, err)
}
