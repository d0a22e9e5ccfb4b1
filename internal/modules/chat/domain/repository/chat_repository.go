package repository

import (
	"context"

	"EDT/internal/modules/chat/domain/entity"
)

type ChatRepository interface {
	CreateSession(ctx context.Context, session *entity.ChatSession) error
	GetSession(ctx context.Context, userID string, id string) (*entity.ChatSession, error)
	ListSessions(ctx context.Context, userID string) ([]*entity.ChatSession, error)
	RenameSession(ctx context.Context, userID string, id string, title string) (bool, error)
	// DeleteSession 同时删除会话下的全部消息
	DeleteSession(ctx context.Context, userID string, id string) (bool, error)

	ListMessages(ctx context.Context, userID string, sessionID string, limit int) ([]*entity.ChatMessage, error)
	// CreateMessages 单条多行 INSERT
	CreateMessages(ctx context.Context, messages []*entity.ChatMessage) error
}
