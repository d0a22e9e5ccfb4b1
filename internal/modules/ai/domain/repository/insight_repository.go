package repository

import (
	"context"

	"EDT/internal/modules/ai/domain/entity"
)

// InsightRepository 洞察只插入不更新
type InsightRepository interface {
	// CreateBatch 一条多行 INSERT
	CreateBatch(ctx context.Context, items []*entity.AIInsight) error
	List(ctx context.Context, userID string, limit int) ([]*entity.AIInsight, error)
	Count(ctx context.Context, userID string) (int64, error)
}

type SkillRepository interface {
	CreateBatch(ctx context.Context, items []*entity.UserSkill) error
	// ListLatest 最近一次分析写入的那一批
	ListLatest(ctx context.Context, userID string) ([]*entity.UserSkill, error)
}
