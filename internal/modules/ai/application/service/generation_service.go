package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"EDT/internal/modules/ai/application/dto/request"
	"EDT/internal/modules/ai/domain/repository"
	"EDT/internal/modules/ai/infrastructure/pipeline"
	"EDT/internal/modules/ai/infrastructure/plugins"
	techlogEntity "EDT/internal/modules/techlog/domain/entity"
	userEntity "EDT/internal/modules/user/domain/entity"
	"EDT/pkg/util"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 给标签建议参考的最近日志条数
const recentTagLogs = 20

// LogLookup 读取日志，用于报告草稿与已有标签
type LogLookup interface {
	GetByID(ctx context.Context, userID string, id string) (*techlogEntity.TechnicalLog, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*techlogEntity.TechnicalLog, error)
}

type ProfileSource interface {
	Get(ctx context.Context, userID string) (*userEntity.UserProfile, error)
}

// GenerationService 一次性的结构化生成，不落库
type GenerationService interface {
	SuggestTags(ctx context.Context, userID string, req request.SuggestTagsRequest) (*pipeline.Result, error)
	SmartGoal(ctx context.Context, userID string, req request.SmartGoalRequest) (*pipeline.Result, error)
	DraftReport(ctx context.Context, userID string, req request.DraftReportRequest) (*pipeline.Result, error)
	EnhanceProfile(ctx context.Context, userID string, req request.EnhanceProfileRequest) (*pipeline.Result, error)
}

type generationServiceImpl struct {
	engine   *pipeline.Engine
	logs     LogLookup
	profiles ProfileSource
	skills   repository.SkillRepository
}

func NewGenerationService(engine *pipeline.Engine, logs LogLookup, profiles ProfileSource, skills repository.SkillRepository) GenerationService {
	return &generationServiceImpl{engine: engine, logs: logs, profiles: profiles, skills: skills}
}

func (s *generationServiceImpl) SuggestTags(ctx context.Context, userID string, req request.SuggestTagsRequest) (*pipeline.Result, error) {
	facts := plugins.Facts{
		"title":       req.Title,
		"description": req.Description,
		"system":      req.System,
	}
	if existing := s.existingTags(ctx, userID); len(existing) > 0 {
		facts["existing_tags"] = existing
	}
	return s.engine.Execute(ctx, plugins.NameSuggestTags, facts)
}

// existingTags 用户已用过的标签，读取失败不影响生成
func (s *generationServiceImpl) existingTags(ctx context.Context, userID string) []string {
	if s.engine == nil || !s.engine.Configured() {
		return nil
	}
	logs, err := s.logs.ListRecent(ctx, userID, recentTagLogs)
	if err != nil {
		zlog.Warn("load existing tags failed", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	var tags []string
	for _, l := range logs {
		tags = append(tags, l.Tags...)
	}
	return util.CleanStrings(tags)
}

func (s *generationServiceImpl) SmartGoal(ctx context.Context, userID string, req request.SmartGoalRequest) (*pipeline.Result, error) {
	return s.engine.Execute(ctx, plugins.NameSmartGoal, plugins.Facts{
		"goal":        req.Goal,
		"category":    req.Category,
		"deadline":    req.Deadline,
		"description": req.Description,
	})
}

func (s *generationServiceImpl) DraftReport(ctx context.Context, userID string, req request.DraftReportRequest) (*pipeline.Result, error) {
	facts := plugins.Facts{
		"title":       req.Title,
		"system":      req.System,
		"description": req.Description,
		"resolution":  req.Resolution,
		"outcome":     req.Outcome,
	}
	if id := strings.TrimSpace(req.LogId); id != "" {
		log, err := s.logs.GetByID(ctx, userID, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.NotFound("technical log not found")
		}
		if err != nil {
			return nil, xerr.Internal(err)
		}
		facts = plugins.Facts{
			"title":       log.Title,
			"system":      log.System,
			"description": log.Description,
			"resolution":  log.Resolution,
			"outcome":     log.Outcome,
		}
	}
	return s.engine.Execute(ctx, plugins.NameDraftReport, facts)
}

func (s *generationServiceImpl) EnhanceProfile(ctx context.Context, userID string, req request.EnhanceProfileRequest) (*pipeline.Result, error) {
	base, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		base = &userEntity.UserProfile{UserId: userID}
	} else if err != nil {
		return nil, xerr.Internal(err)
	}

	facts := plugins.Facts{
		"full_name":       pick(req.FullName, base.FullName),
		"title":           pick(req.Title, base.Title),
		"company":         pick(req.Company, base.Company),
		"bio":             pick(req.Bio, base.Bio),
		"specializations": []string(base.Specializations),
	}
	years := base.YearsExperience
	if req.YearsExperience != nil {
		years = *req.YearsExperience
	}
	if years > 0 {
		facts["years_experience"] = strconv.Itoa(years)
	}
	if specs := util.CleanStrings(req.Specializations); len(specs) > 0 {
		facts["specializations"] = specs
	}

	skills, err := s.skills.ListLatest(ctx, userID)
	if err != nil {
		zlog.Warn("load skills for profile failed", zap.String("user_id", userID), zap.Error(err))
	}
	names := make([]string, 0, len(skills))
	for _, sk := range skills {
		names = append(names, sk.Name)
	}
	facts["skills"] = names

	return s.engine.Execute(ctx, plugins.NameEnhanceProfile, facts)
}

func pick(override string, stored string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return stored
}
