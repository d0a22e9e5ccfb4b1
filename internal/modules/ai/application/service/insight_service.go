package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"EDT/internal/modules/ai/domain/entity"
	"EDT/internal/modules/ai/domain/repository"
	"EDT/internal/modules/ai/infrastructure/pipeline"
	"EDT/internal/modules/ai/infrastructure/plugins"
	"EDT/internal/modules/ai/infrastructure/reader"
	goalEntity "EDT/internal/modules/goal/domain/entity"
	projectEntity "EDT/internal/modules/project/domain/entity"
	"EDT/pkg/util"
	"EDT/pkg/xerr"
)

// 洞察列表默认返回条数
const insightListLimit = 20

type InsightService interface {
	Generate(ctx context.Context, userID string) ([]*entity.AIInsight, string, error)
	List(ctx context.Context, userID string) ([]*entity.AIInsight, error)
}

type insightServiceImpl struct {
	engine *pipeline.Engine
	reader SnapshotReader
	repo   repository.InsightRepository
	now    func() time.Time
}

func NewInsightService(engine *pipeline.Engine, reader SnapshotReader, repo repository.InsightRepository) InsightService {
	return &insightServiceImpl{engine: engine, reader: reader, repo: repo, now: time.Now}
}

// Generate 某一类记录读取失败时按空列表继续
func (s *insightServiceImpl) Generate(ctx context.Context, userID string) ([]*entity.AIInsight, string, error) {
	now := s.now().UTC()
	snap := s.reader.Read(ctx, userID, snapshotLimit)

	res, err := s.engine.Execute(ctx, plugins.NameInsights, plugins.Facts{
		"summary": snap.Summary(),
		"stats":   computeStats(snap, now),
	})
	if err != nil {
		return nil, "", err
	}

	objs := res.Data.Objects("insights")
	items := make([]*entity.AIInsight, 0, len(objs))
	for _, o := range objs {
		items = append(items, &entity.AIInsight{
			Id:          util.GenerateID(),
			UserId:      userID,
			Type:        o.Str("type"),
			Title:       o.Str("title"),
			Description: o.Str("description"),
			Confidence:  o.Int("confidence"),
			Priority:    o.Str("priority"),
			Category:    o.Str("category"),
			Actionable:  o.Bool("actionable"),
			CreatedAt:   now,
		})
	}
	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return nil, "", xerr.Internal(err)
	}
	return items, res.Mode, nil
}

func (s *insightServiceImpl) List(ctx context.Context, userID string) ([]*entity.AIInsight, error) {
	items, err := s.repo.List(ctx, userID, insightListLimit)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return items, nil
}

// computeStats 出现次数最多的系统按不区分大小写统计，次数相同取字母序靠前的
func computeStats(snap *reader.Snapshot, now time.Time) plugins.InsightStats {
	st := plugins.InsightStats{
		Goals:    len(snap.Goals),
		Logs:     len(snap.Logs),
		Projects: len(snap.Projects),
	}
	for _, g := range snap.Goals {
		switch {
		case g.Status == goalEntity.StatusCompleted:
			st.CompletedGoals++
		case g.IsOverdue(now):
			st.OverdueGoals++
		}
		if g.Status == goalEntity.StatusStalled {
			st.StalledGoals++
		}
	}
	for _, p := range snap.Projects {
		if p.Status == projectEntity.StatusOngoing {
			st.OngoingProjects++
		}
	}

	counts := make(map[string]int)
	display := make(map[string]string)
	for _, l := range snap.Logs {
		name := strings.TrimSpace(l.System)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := display[key]; !ok {
			display[key] = name
		}
		counts[key]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > st.TopSystemLogs {
			st.TopSystem = display[k]
			st.TopSystemLogs = counts[k]
		}
	}
	return st
}
