package repository

import (
	"context"

	"EDT/internal/modules/user/domain/entity"
)

type UserProfileRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserProfile, error)
	// Upsert 整行写入，created_at 只在首次插入时设置
	Upsert(ctx context.Context, profile *entity.UserProfile) error
}
