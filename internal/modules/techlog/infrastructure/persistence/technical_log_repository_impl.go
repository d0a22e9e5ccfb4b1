package persistence

import (
	"context"

	"EDT/internal/modules/techlog/domain/entity"
	"EDT/internal/modules/techlog/domain/repository"

	"gorm.io/gorm"
)

type technicalLogRepositoryImpl struct {
	db *gorm.DB
}

func NewTechnicalLogRepository(db *gorm.DB) repository.TechnicalLogRepository {
	return &technicalLogRepositoryImpl{db: db}
}

func (r *technicalLogRepositoryImpl) Create(ctx context.Context, log *entity.TechnicalLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *technicalLogRepositoryImpl) GetByID(ctx context.Context, userID string, id string) (*entity.TechnicalLog, error) {
	var log entity.TechnicalLog
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *technicalLogRepositoryImpl) List(ctx context.Context, userID string, system string) ([]*entity.TechnicalLog, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if system != "" {
		// system 在部分方言中是保留字，交给 gorm 引用列名
		q = q.Where(map[string]any{"system": system})
	}
	logs := make([]*entity.TechnicalLog, 0)
	err := q.Order("log_date DESC, created_at DESC").Find(&logs).Error
	return logs, err
}

func (r *technicalLogRepositoryImpl) ListRecent(ctx context.Context, userID string, limit int) ([]*entity.TechnicalLog, error) {
	logs := make([]*entity.TechnicalLog, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *technicalLogRepositoryImpl) Update(ctx context.Context, log *entity.TechnicalLog) (bool, error) {
	log.UpdatedAt = r.db.NowFunc()
	res := r.db.WithContext(ctx).
		Model(&entity.TechnicalLog{}).
		Where("id = ? AND user_id = ?", log.Id, log.UserId).
		Select("title", "system", "description", "resolution", "outcome", "tags", "images", "log_date", "updated_at").
		Updates(log)
	return res.RowsAffected > 0, res.Error
}

func (r *technicalLogRepositoryImpl) Delete(ctx context.Context, userID string, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.TechnicalLog{})
	return res.RowsAffected > 0, res.Error
}

func (r *technicalLogRepositoryImpl) Count(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.TechnicalLog{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
