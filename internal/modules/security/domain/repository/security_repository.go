package repository

import (
	"context"

	"EDT/internal/modules/security/domain/entity"
)

type SessionRepository interface {
	// Upsert 以 (user_id, session_token) 为键写入会话
	Upsert(ctx context.Context, session *entity.UserSession) error
	List(ctx context.Context, userID string) ([]*entity.UserSession, error)
	GetByID(ctx context.Context, userID string, id string) (*entity.UserSession, error)
	GetByToken(ctx context.Context, userID string, token string) (*entity.UserSession, error)
	ClearCurrent(ctx context.Context, userID string, token string) error
	Delete(ctx context.Context, userID string, id string) (bool, error)
}

type ActivityRepository interface {
	Append(ctx context.Context, log *entity.SecurityActivityLog) error
	ListLatest(ctx context.Context, userID string, limit int) ([]*entity.SecurityActivityLog, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, userID string) (*entity.SecuritySettings, error)
	Upsert(ctx context.Context, settings *entity.SecuritySettings) error
}
