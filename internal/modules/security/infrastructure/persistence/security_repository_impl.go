package persistence

import (
	"context"

	"EDT/internal/modules/security/domain/entity"
	"EDT/internal/modules/security/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionRepositoryImpl struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (r *sessionRepositoryImpl) Upsert(ctx context.Context, session *entity.UserSession) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "session_token"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_agent", "device_type", "browser", "ip_address", "is_current",
			"last_active_at", "expires_at", "updated_at",
		}),
	}).Create(session).Error
}

func (r *sessionRepositoryImpl) List(ctx context.Context, userID string) ([]*entity.UserSession, error) {
	items := make([]*entity.UserSession, 0)
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("last_active_at DESC").Find(&items).Error
	return items, err
}

func (r *sessionRepositoryImpl) GetByID(ctx context.Context, userID string, id string) (*entity.UserSession, error) {
	var s entity.UserSession
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepositoryImpl) GetByToken(ctx context.Context, userID string, token string) (*entity.UserSession, error) {
	var s entity.UserSession
	if err := r.db.WithContext(ctx).Where("user_id = ? AND session_token = ?", userID, token).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepositoryImpl) ClearCurrent(ctx context.Context, userID string, token string) error {
	return r.db.WithContext(ctx).Model(&entity.UserSession{}).
		Where("user_id = ? AND session_token = ?", userID, token).
		Updates(map[string]interface{}{"is_current": false, "updated_at": r.db.NowFunc()}).Error
}

func (r *sessionRepositoryImpl) Delete(ctx context.Context, userID string, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.UserSession{})
	return res.RowsAffected > 0, res.Error
}

type activityRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) repository.ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

func (r *activityRepositoryImpl) Append(ctx context.Context, log *entity.SecurityActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *activityRepositoryImpl) ListLatest(ctx context.Context, userID string, limit int) ([]*entity.SecurityActivityLog, error) {
	items := make([]*entity.SecurityActivityLog, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

type settingsRepositoryImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

func (r *settingsRepositoryImpl) Get(ctx context.Context, userID string) (*entity.SecuritySettings, error) {
	var s entity.SecuritySettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepositoryImpl) Upsert(ctx context.Context, settings *entity.SecuritySettings) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"two_factor_enabled", "login_notifications", "suspicious_activity_alerts",
			"session_timeout_minutes", "updated_at",
		}),
	}).Create(settings).Error
}
