package persistence

import (
	"context"

	"EDT/internal/modules/goal/domain/entity"
	"EDT/internal/modules/goal/domain/repository"

	"gorm.io/gorm"
)

type goalRepositoryImpl struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) repository.GoalRepository {
	return &goalRepositoryImpl{db: db}
}

func (r *goalRepositoryImpl) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepositoryImpl) GetByID(ctx context.Context, userID string, id string) (*entity.Goal, error) {
	var goal entity.Goal
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepositoryImpl) List(ctx context.Context, userID string, filter repository.ListFilter) ([]*entity.Goal, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	goals := make([]*entity.Goal, 0)
	err := q.Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (r *goalRepositoryImpl) ListRecent(ctx context.Context, userID string, limit int) ([]*entity.Goal, error) {
	goals := make([]*entity.Goal, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&goals).Error
	return goals, err
}

func (r *goalRepositoryImpl) ListOpenWithDeadline(ctx context.Context, userID string) ([]*entity.Goal, error) {
	goals := make([]*entity.Goal, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND deadline IS NOT NULL AND status <> ?", userID, entity.StatusCompleted).
		Order("deadline ASC").
		Find(&goals).Error
	return goals, err
}

func (r *goalRepositoryImpl) Update(ctx context.Context, goal *entity.Goal) (bool, error) {
	goal.UpdatedAt = r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&entity.Goal{}).
		Where("id = ? AND user_id = ?", goal.Id, goal.UserId).
		Select("title", "description", "category", "status", "progress", "deadline", "updated_at").
		Updates(goal)
	return res.RowsAffected > 0, res.Error
}

func (r *goalRepositoryImpl) Delete(ctx context.Context, userID string, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.Goal{})
	return res.RowsAffected > 0, res.Error
}

func (r *goalRepositoryImpl) CountByStatus(ctx context.Context, userID string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Goal{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(entity.Statuses))
	for _, s := range entity.Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
