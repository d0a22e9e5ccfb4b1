package repository

import (
	"context"

	"EDT/internal/modules/techlog/domain/entity"
)

type TechnicalLogRepository interface {
	Create(ctx context.Context, log *entity.TechnicalLog) error
	GetByID(ctx context.Context, userID string, id string) (*entity.TechnicalLog, error)
	List(ctx context.Context, userID string, system string) ([]*entity.TechnicalLog, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*entity.TechnicalLog, error)
	Update(ctx context.Context, log *entity.TechnicalLog) (bool, error)
	Delete(ctx context.Context, userID string, id string) (bool, error)
	Count(ctx context.Context, userID string) (int64, error)
}
