package persistence

import (
	"context"

	"EDT/internal/modules/ai/domain/entity"
	"EDT/internal/modules/ai/domain/repository"

	"gorm.io/gorm"
)

type insightRepositoryImpl struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) repository.InsightRepository {
	return &insightRepositoryImpl{db: db}
}

func (r *insightRepositoryImpl) CreateBatch(ctx context.Context, items []*entity.AIInsight) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *insightRepositoryImpl) List(ctx context.Context, userID string, limit int) ([]*entity.AIInsight, error) {
	items := make([]*entity.AIInsight, 0)
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *insightRepositoryImpl) Count(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.AIInsight{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

type skillRepositoryImpl struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) repository.SkillRepository {
	return &skillRepositoryImpl{db: db}
}

func (r *skillRepositoryImpl) CreateBatch(ctx context.Context, items []*entity.UserSkill) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ListLatest 同一批次的 created_at 相同
func (r *skillRepositoryImpl) ListLatest(ctx context.Context, userID string) ([]*entity.UserSkill, error) {
	items := make([]*entity.UserSkill, 0)
	latest := r.db.Model(&entity.UserSkill{}).Select("MAX(created_at)").Where("user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at = (?)", userID, latest).
		Order("proficiency DESC, name ASC").
		Find(&items).Error
	return items, err
}
