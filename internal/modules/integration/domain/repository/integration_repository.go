package repository

import (
	"context"

	"EDT/internal/modules/integration/domain/entity"
)

type IntegrationRepository interface {
	Create(ctx context.Context, item *entity.Integration) error
	GetByID(ctx context.Context, userID string, id string) (*entity.Integration, error)
	List(ctx context.Context, userID string) ([]*entity.Integration, error)
	Update(ctx context.Context, item *entity.Integration) (bool, error)
	// SaveRun 只写入连接测试/同步产生的状态与计数列
	SaveRun(ctx context.Context, item *entity.Integration) (bool, error)
	Delete(ctx context.Context, userID string, id string) (bool, error)
}
