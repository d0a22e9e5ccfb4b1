package handler

import (
	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/ai/application/dto/request"
	"EDT/internal/modules/ai/application/service"
	"EDT/pkg/back"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler 结构化生成、技能、洞察与问答
//
// 生成类接口统一用 back.Generated 返回，顶层 mode 标明结果来自模型还是本地兜底
type AIHandler struct {
	gen      service.GenerationService
	skills   service.SkillService
	insights service.InsightService
	copilot  service.CopilotService
}

func NewAIHandler(gen service.GenerationService, skills service.SkillService, insights service.InsightService, copilot service.CopilotService) *AIHandler {
	return &AIHandler{gen: gen, skills: skills, insights: insights, copilot: copilot}
}

// Register 挂载 /ai、/insights、/skills 路由
func (h *AIHandler) Register(rg *gin.RouterGroup) {
	ai := rg.Group("/ai")
	ai.POST("/suggest-tags", h.SuggestTags)
	ai.POST("/smart-goals", h.SmartGoal)
	ai.POST("/draft-report", h.DraftReport)
	ai.POST("/analyze-skills", h.AnalyzeSkills)
	ai.POST("/enhance-profile", h.EnhanceProfile)
	ai.POST("/copilot", h.Ask)

	rg.GET("/insights", h.ListInsights)
	rg.POST("/insights/generate", h.GenerateInsights)
	rg.GET("/skills", h.ListSkills)
}

// bind 绑定失败时已写入 400
func bind(c *gin.Context, req any, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		zlog.Warn("ai request bind error", zap.String("op", op), zap.Error(err))
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return false
	}
	return true
}

// SuggestTags POST /api/ai/suggest-tags
//
// 没有兜底：未配置模型时返回 500 Configuration error
func (h *AIHandler) SuggestTags(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.SuggestTagsRequest
	if !bind(c, &req, "suggest_tags") {
		return
	}
	res, err := h.gen.SuggestTags(c.Request.Context(), uuid, req)
	if err != nil {
		back.Fail(c, err)
		return
	}
	back.Generated(c, res.Data, res.Mode, nil)
}

// SmartGoal POST /api/ai/smart-goals
func (h *AIHandler) SmartGoal(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.SmartGoalRequest
	if !bind(c, &req, "smart_goal") {
		return
	}
	res, err := h.gen.SmartGoal(c.Request.Context(), uuid, req)
	if err != nil {
		back.Fail(c, err)
		return
	}
	back.Generated(c, res.Data, res.Mode, nil)
}

// DraftReport POST /api/ai/draft-report
func (h *AIHandler) DraftReport(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.DraftReportRequest
	if !bind(c, &req, "draft_report") {
		return
	}
	res, err := h.gen.DraftReport(c.Request.Context(), uuid, req)
	if err != nil {
		back.Fail(c, err)
		return
	}
	back.Generated(c, res.Data, res.Mode, nil)
}

// EnhanceProfile POST /api/ai/enhance-profile
func (h *AIHandler) EnhanceProfile(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.EnhanceProfileRequest
	if !bind(c, &req, "enhance_profile") {
		return
	}
	res, err := h.gen.EnhanceProfile(c.Request.Context(), uuid, req)
	if err != nil {
		back.Fail(c, err)
		return
	}
	back.Generated(c, res.Data, res.Mode, nil)
}

// AnalyzeSkills POST /api/ai/analyze-skills
func (h *AIHandler) AnalyzeSkills(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, mode, err := h.skills.Analyze(c.Request.Context(), uuid)
	back.Generated(c, data, mode, err)
}

// ListSkills GET /api/skills
func (h *AIHandler) ListSkills(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.skills.List(c.Request.Context(), uuid)
	back.Result(c, data, err)
}

// GenerateInsights POST /api/insights/generate
func (h *AIHandler) GenerateInsights(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, mode, err := h.insights.Generate(c.Request.Context(), uuid)
	back.Generated(c, data, mode, err)
}

// ListInsights GET /api/insights
func (h *AIHandler) ListInsights(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	data, err := h.insights.List(c.Request.Context(), uuid)
	back.Result(c, data, err)
}

// Ask POST /api/ai/copilot
func (h *AIHandler) Ask(c *gin.Context) {
	uuid, ok := jwt.CurrentUser(c)
	if !ok {
		return
	}
	var req request.AskRequest
	if !bind(c, &req, "copilot") {
		return
	}
	res, err := h.copilot.Ask(c.Request.Context(), uuid, req)
	if err != nil {
		back.Fail(c, err)
		return
	}
	back.Generated(c, res, res.Mode, nil)
}
