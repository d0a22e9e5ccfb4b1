package repository

import (
	"context"

	"EDT/internal/modules/goal/domain/entity"
)

// ListFilter 列表筛选条件，空值表示不过滤
type ListFilter struct {
	Status   string
	Category string
}

type GoalRepository interface {
	Create(ctx context.Context, goal *entity.Goal) error
	GetByID(ctx context.Context, userID string, id string) (*entity.Goal, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]*entity.Goal, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*entity.Goal, error)
	// ListOpenWithDeadline 未完成且设置了截止日期的目标
	ListOpenWithDeadline(ctx context.Context, userID string) ([]*entity.Goal, error)
	Update(ctx context.Context, goal *entity.Goal) (bool, error)
	Delete(ctx context.Context, userID string, id string) (bool, error)
	CountByStatus(ctx context.Context, userID string) (map[string]int64, error)
}
