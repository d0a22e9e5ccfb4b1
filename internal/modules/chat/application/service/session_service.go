package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"EDT/internal/modules/chat/application/dto/request"
	"EDT/internal/modules/chat/domain/entity"
	"EDT/internal/modules/chat/domain/repository"
	"EDT/pkg/util"
	"EDT/pkg/xerr"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultSessionTitle = "New conversation"
	maxMessages         = 500
)

type SessionService interface {
	CreateSession(ctx context.Context, userID string, req request.CreateSessionRequest) (*entity.ChatSession, error)
	ListSessions(ctx context.Context, userID string) ([]*entity.ChatSession, error)
	RenameSession(ctx context.Context, userID string, id string, title string) (*entity.ChatSession, error)
	DeleteSession(ctx context.Context, userID string, id string) error
	ListMessages(ctx context.Context, userID string, sessionID string) ([]*entity.ChatMessage, error)
	AppendMessage(ctx context.Context, userID string, sessionID string, req request.AppendMessageRequest) (*entity.ChatMessage, error)
}

type sessionServiceImpl struct {
	repo repository.ChatRepository
}

func NewSessionService(repo repository.ChatRepository) SessionService {
	return &sessionServiceImpl{repo: repo}
}

var errSessionNotFound = xerr.NotFound("chat session not found")

func (s *sessionServiceImpl) CreateSession(ctx context.Context, userID string, req request.CreateSessionRequest) (*entity.ChatSession, error) {
	title := util.Truncate(req.Title, 200)
	if title == "" {
		title = defaultSessionTitle
	}
	sess := &entity.ChatSession{Id: util.GenerateID(), UserId: userID, Title: title}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, xerr.Internal(err)
	}
	return sess, nil
}

func (s *sessionServiceImpl) ListSessions(ctx context.Context, userID string) ([]*entity.ChatSession, error) {
	sessions, err := s.repo.ListSessions(ctx, userID)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return sessions, nil
}

func (s *sessionServiceImpl) RenameSession(ctx context.Context, userID string, id string, title string) (*entity.ChatSession, error) {
	title = util.Truncate(title, 200)
	if title == "" {
		return nil, xerr.Validation("title is required")
	}
	ok, err := s.repo.RenameSession(ctx, userID, id, title)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	if !ok {
		return nil, errSessionNotFound
	}
	return s.getSession(ctx, userID, id)
}

func (s *sessionServiceImpl) DeleteSession(ctx context.Context, userID string, id string) error {
	ok, err := s.repo.DeleteSession(ctx, userID, id)
	if err != nil {
		return xerr.Internal(err)
	}
	if !ok {
		return errSessionNotFound
	}
	return nil
}

func (s *sessionServiceImpl) ListMessages(ctx context.Context, userID string, sessionID string) ([]*entity.ChatMessage, error) {
	if _, err := s.getSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	messages, err := s.repo.ListMessages(ctx, userID, sessionID, maxMessages)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return messages, nil
}

func (s *sessionServiceImpl) AppendMessage(ctx context.Context, userID string, sessionID string, req request.AppendMessageRequest) (*entity.ChatMessage, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, xerr.Validation("content is required")
	}
	role := req.Role
	if role == "" {
		role = entity.RoleUser
	}
	if _, err := s.getSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	meta := datatypes.JSON("{}")
	if len(req.Metadata) > 0 {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, xerr.Validation("metadata must be a JSON object")
		}
		meta = raw
	}
	msg := &entity.ChatMessage{
		Id:        util.GenerateID(),
		SessionId: sessionID,
		UserId:    userID,
		Role:      role,
		Content:   content,
		Metadata:  meta,
	}
	if err := s.repo.CreateMessages(ctx, []*entity.ChatMessage{msg}); err != nil {
		return nil, xerr.Internal(err)
	}
	return msg, nil
}

func (s *sessionServiceImpl) getSession(ctx context.Context, userID string, id string) (*entity.ChatSession, error) {
	sess, err := s.repo.GetSession(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errSessionNotFound
	}
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return sess, nil
}
