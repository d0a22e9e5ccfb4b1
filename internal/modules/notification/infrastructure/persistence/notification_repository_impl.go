package persistence

import (
	"context"
	"time"

	"EDT/internal/modules/notification/domain/entity"
	"EDT/internal/modules/notification/domain/repository"

	"gorm.io/gorm"
)

type notificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

func (r *notificationRepositoryImpl) CreateBatch(ctx context.Context, items []*entity.Notification) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *notificationRepositoryImpl) List(ctx context.Context, userID string, unreadOnly bool) ([]*entity.Notification, error) {
	items := make([]*entity.Notification, 0)
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *notificationRepositoryImpl) ExistingKeys(ctx context.Context, userID string, types []string) (map[string]bool, error) {
	var rows []struct {
		Type      string
		RelatedId string
	}
	err := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Select("type", "related_id").
		Where("user_id = ? AND type IN ?", userID, types).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	keys := make(map[string]bool, len(rows))
	for _, row := range rows {
		keys[row.Type+"|"+row.RelatedId] = true
	}
	return keys, nil
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, userID string, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return res.RowsAffected > 0, res.Error
}

func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}

func (r *notificationRepositoryImpl) Delete(ctx context.Context, userID string, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.Notification{})
	return res.RowsAffected > 0, res.Error
}

func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}
