package repository

import (
	"context"
	"time"

	"EDT/internal/modules/notification/domain/entity"
)

type NotificationRepository interface {
	CreateBatch(ctx context.Context, items []*entity.Notification) error
	List(ctx context.Context, userID string, unreadOnly bool) ([]*entity.Notification, error)
	// ExistingKeys 返回已存在的 type|related_id 组合，用于去重
	ExistingKeys(ctx context.Context, userID string, types []string) (map[string]bool, error)
	MarkRead(ctx context.Context, userID string, id string, at time.Time) (bool, error)
	MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error)
	Delete(ctx context.Context, userID string, id string) (bool, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
}
