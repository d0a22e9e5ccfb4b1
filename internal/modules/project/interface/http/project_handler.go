package handler

import (
	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/project/application/dto/request"
	"EDT/internal/modules/project/application/service"
	"EDT/pkg/back"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		zlog.Warn("project bind error", zap.String("path", c.FullPath()), zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return false
	}
	return true
}

// List GET /api/projects?status=
func (h *ProjectHandler) List(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var q request.ProjectListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		zlog.Warn("project list bind error", zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	data, err := h.svc.List(c.Request.Context(), uuid, q.Status)
	back.Result(c, data, err)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.ProjectRequest
	if !bind(c, &req) {
		return
	}
	data, err := h.svc.Create(c.Request.Context(), uuid, req)
	back.Created(c, data, err)
}

// Get 返回项目及其里程碑、任务、进展
func (h *ProjectHandler) Get(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.svc.Get(c.Request.Context(), uuid, c.Param("id"))
	back.Result(c, data, err)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.ProjectRequest
	if !bind(c, &req) {
		return
	}
	data, err := h.svc.Update(c.Request.Context(), uuid, c.Param("id"), req)
	back.Result(c, data, err)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")
	err := h.svc.Delete(c.Request.Context(), uuid, id)
	back.Result(c, gin.H{"id": id}, err)
}

// AddMilestone POST /api/projects/:id/milestones
func (h *ProjectHandler) AddMilestone(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.MilestoneRequest
	if !bind(c, &req) {
		return
	}
	data, err := h.svc.AddMilestone(c.Request.Context(), uuid, c.Param("id"), req)
	back.Created(c, data, err)
}

func (h *ProjectHandler) UpdateMilestone(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.MilestoneRequest
	if !bind(c, &req) {
		return
	}
	data, err := h.svc.UpdateMilestone(c.Request.Context(), uuid, c.Param("id"), c.Param("childId"), req)
	back.Result(c, data, err)
}

func (h *ProjectHandler) DeleteMilestone(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	id := c.Param("childId")
	err := h.svc.DeleteMilestone(c.Request.Context(), uuid, c.Param("id"), id)
	back.Result(c, gin.H{"id": id}, err)
}

// AddTask POST /api/projects/:id/tasks
func (h *ProjectHandler) AddTask(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.TaskRequest
	if !bind(c, &req) {
		return
	}
	data, err := h.svc.AddTask(c.Request.Context(), uuid, c.Param("id"), req)
	back.Created(c, data, err)
}

func (h *ProjectHandler) UpdateTask(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.TaskRequest
	if !bind(c, &req) {
		return
	}
	data, err := h.svc.UpdateTask(c.Request.Context(), uuid, c.Param("id"), c.Param("childId"), req)
	back.Result(c, data, err)
}

func (h *ProjectHandler) DeleteTask(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	id := c.Param("childId")
	err := h.svc.DeleteTask(c.Request.Context(), uuid, c.Param("id"), id)
	back.Result(c, gin.H{"id": id}, err)
}

// AddUpdate POST /api/projects/:id/updates
func (h *ProjectHandler) AddUpdate(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.UpdateRequest
	if !bind(c, &req) {
		return
	}
	data, err := h.svc.AddUpdate(c.Request.Context(), uuid, c.Param("id"), req)
	back.Created(c, data, err)
}

func (h *ProjectHandler) DeleteUpdate(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	id := c.Param("childId")
	err := h.svc.DeleteUpdate(c.Request.Context(), uuid, c.Param("id"), id)
	back.Result(c, gin.H{"id": id}, err)
}

// Register 挂载项目及子资源路由
func (h *ProjectHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/projects", h.List)
	rg.POST("/projects", h.Create)
	rg.GET("/projects/:id", h.Get)
	rg.PUT("/projects/:id", h.Update)
	rg.DELETE("/projects/:id", h.Delete)

	rg.POST("/projects/:id/milestones", h.AddMilestone)
	rg.PUT("/projects/:id/milestones/:childId", h.UpdateMilestone)
	rg.DELETE("/projects/:id/milestones/:childId", h.DeleteMilestone)
	rg.POST("/projects/:id/tasks", h.AddTask)
	rg.PUT("/projects/:id/tasks/:childId", h.UpdateTask)
	rg.DELETE("/projects/:id/tasks/:childId", h.DeleteTask)
	rg.POST("/projects/:id/updates", h.AddUpdate)
	rg.DELETE("/projects/:id/updates/:childId", h.DeleteUpdate)
}
