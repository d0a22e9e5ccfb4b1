package persistence

import (
	"context"

	"EDT/internal/modules/chat/domain/entity"
	"EDT/internal/modules/chat/domain/repository"

	"gorm.io/gorm"
)

type chatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) repository.ChatRepository {
	return &chatRepositoryImpl{db: db}
}

func (r *chatRepositoryImpl) CreateSession(ctx context.Context, session *entity.ChatSession) error {
	return r.db.WithContext(ctx).Omit("Messages").Create(session).Error
}

func (r *chatRepositoryImpl) GetSession(ctx context.Context, userID string, id string) (*entity.ChatSession, error) {
	var sess entity.ChatSession
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *chatRepositoryImpl) ListSessions(ctx context.Context, userID string) ([]*entity.ChatSession, error) {
	sessions := make([]*entity.ChatSession, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *chatRepositoryImpl) RenameSession(ctx context.Context, userID string, id string, title string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.ChatSession{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"title": title, "updated_at": r.db.NowFunc()})
	return res.RowsAffected > 0, res.Error
}

func (r *chatRepositoryImpl) DeleteSession(ctx context.Context, userID string, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ? AND user_id = ?", id, userID).Delete(&entity.ChatMessage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entity.ChatSession{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

func (r *chatRepositoryImpl) ListMessages(ctx context.Context, userID string, sessionID string, limit int) ([]*entity.ChatMessage, error) {
	messages := make([]*entity.ChatMessage, 0)
	q := r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&messages).Error
	return messages, err
}

func (r *chatRepositoryImpl) CreateMessages(ctx context.Context, messages []*entity.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&messages).Error
}
