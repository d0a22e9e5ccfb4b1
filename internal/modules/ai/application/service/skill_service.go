package service

import (
	"context"
	"time"

	"EDT/internal/modules/ai/domain/entity"
	"EDT/internal/modules/ai/domain/repository"
	"EDT/internal/modules/ai/infrastructure/pipeline"
	"EDT/internal/modules/ai/infrastructure/plugins"
	"EDT/internal/modules/ai/infrastructure/reader"
	"EDT/pkg/util"
	"EDT/pkg/xerr"
)

// 分析与洞察读取的每类记录上限
const snapshotLimit = 50

// SnapshotReader 并行读取用户最近记录
type SnapshotReader interface {
	Read(ctx context.Context, userID string, limit int) *reader.Snapshot
}

type SkillService interface {
	// Analyze 返回本次写入的技能与结果来源（ai / demo）
	Analyze(ctx context.Context, userID string) ([]*entity.UserSkill, string, error)
	List(ctx context.Context, userID string) ([]*entity.UserSkill, error)
}

type skillServiceImpl struct {
	engine *pipeline.Engine
	reader SnapshotReader
	repo   repository.SkillRepository
	now    func() time.Time
}

func NewSkillService(engine *pipeline.Engine, reader SnapshotReader, repo repository.SkillRepository) SkillService {
	return &skillServiceImpl{engine: engine, reader: reader, repo: repo, now: time.Now}
}

func (s *skillServiceImpl) Analyze(ctx context.Context, userID string) ([]*entity.UserSkill, string, error) {
	snap := s.reader.Read(ctx, userID, snapshotLimit)
	if snap.Empty() {
		return nil, "", xerr.Validation("Add technical logs, goals or projects before analyzing skills")
	}

	res, err := s.engine.Execute(ctx, plugins.NameAnalyzeSkills, plugins.Facts{"records": snap.Lines()})
	if err != nil {
		return nil, "", err
	}

	// 同一批次共用 created_at，ListLatest 依赖这一点
	createdAt := s.now().UTC()
	items := make([]*entity.UserSkill, 0, len(res.Data.Objects("skills")))
	for _, o := range res.Data.Objects("skills") {
		items = append(items, &entity.UserSkill{
			Id:          util.GenerateID(),
			UserId:      userID,
			Name:        o.Str("name"),
			Category:    o.Str("category"),
			Proficiency: o.Int("proficiency"),
			Evidence:    o.Str("evidence"),
			CreatedAt:   createdAt,
		})
	}
	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return nil, "", xerr.Internal(err)
	}
	return items, res.Mode, nil
}

func (s *skillServiceImpl) List(ctx context.Context, userID string) ([]*entity.UserSkill, error) {
	items, err := s.repo.ListLatest(ctx, userID)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return items, nil
}
