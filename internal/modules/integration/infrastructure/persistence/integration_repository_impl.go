package persistence

import (
	"context"

	"EDT/internal/modules/integration/domain/entity"
	"EDT/internal/modules/integration/domain/repository"

	"gorm.io/gorm"
)

type integrationRepositoryImpl struct {
	db *gorm.DB
}

func NewIntegrationRepository(db *gorm.DB) repository.IntegrationRepository {
	return &integrationRepositoryImpl{db: db}
}

func (r *integrationRepositoryImpl) Create(ctx context.Context, item *entity.Integration) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *integrationRepositoryImpl) GetByID(ctx context.Context, userID string, id string) (*entity.Integration, error) {
	var item entity.Integration
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *integrationRepositoryImpl) List(ctx context.Context, userID string) ([]*entity.Integration, error) {
	items := make([]*entity.Integration, 0)
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *integrationRepositoryImpl) Update(ctx context.Context, item *entity.Integration) (bool, error) {
	item.UpdatedAt = r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&entity.Integration{}).
		Where("id = ? AND user_id = ?", item.Id, item.UserId).
		Select("name", "type", "endpoint", "updated_at").
		Updates(item)
	return res.RowsAffected > 0, res.Error
}

func (r *integrationRepositoryImpl) SaveRun(ctx context.Context, item *entity.Integration) (bool, error) {
	item.UpdatedAt = r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&entity.Integration{}).
		Where("id = ? AND user_id = ?", item.Id, item.UserId).
		Select("status", "records_synced", "sync_count", "error_count", "last_sync_at", "last_tested_at", "updated_at").
		Updates(item)
	return res.RowsAffected > 0, res.Error
}

func (r *integrationRepositoryImpl) Delete(ctx context.Context, userID string, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Integration{})
	return res.RowsAffected > 0, res.Error
}
