package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"EDT/internal/modules/security/application/dto/request"
	"EDT/internal/modules/security/domain/entity"
	"EDT/internal/modules/security/domain/repository"
	"EDT/internal/modules/security/infrastructure/useragent"
	"EDT/pkg/util"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	activityLimit     = 50
	minSessionTimeout = 5
	maxSessionTimeout = 1440
)

// SecurityService 会话与审计记录；身份认证本身由外部身份服务完成
type SecurityService interface {
	SignIn(ctx context.Context, client request.ClientInfo) (*entity.UserSession, error)
	SignOut(ctx context.Context, client request.ClientInfo) error
	ListSessions(ctx context.Context, client request.ClientInfo) ([]*entity.UserSession, error)
	TerminateSession(ctx context.Context, client request.ClientInfo, id string) error
	ListActivity(ctx context.Context, userID string) ([]*entity.SecurityActivityLog, error)
	GetSettings(ctx context.Context, userID string) (*entity.SecuritySettings, error)
	UpdateSettings(ctx context.Context, client request.ClientInfo, req request.SettingsRequest) (*entity.SecuritySettings, error)
}

type securityServiceImpl struct {
	sessions   repository.SessionRepository
	activities repository.ActivityRepository
	settings   repository.SettingsRepository
	sessionTTL time.Duration
	now        func() time.Time
}

func NewSecurityService(sessions repository.SessionRepository, activities repository.ActivityRepository, settings repository.SettingsRepository, sessionTTL time.Duration) SecurityService {
	return &securityServiceImpl{
		sessions:   sessions,
		activities: activities,
		settings:   settings,
		sessionTTL: sessionTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *securityServiceImpl) SignIn(ctx context.Context, client request.ClientInfo) (*entity.UserSession, error) {
	if client.SessionToken == "" {
		return nil, xerr.Validation("session token is required")
	}
	session := s.sessionFor(client)
	if err := s.sessions.Upsert(ctx, session); err != nil {
		return nil, xerr.Internal(err)
	}
	// 冲突更新时主键沿用已有行
	if stored, err := s.sessions.GetByToken(ctx, client.UserID, client.SessionToken); err == nil {
		session = stored
	}
	s.audit(ctx, client, entity.ActivitySignIn, true, map[string]any{
		"device_type": session.DeviceType,
		"browser":     session.Browser,
	})
	return session, nil
}

func (s *securityServiceImpl) SignOut(ctx context.Context, client request.ClientInfo) error {
	if client.SessionToken != "" {
		if err := s.sessions.ClearCurrent(ctx, client.UserID, client.SessionToken); err != nil {
			return xerr.Internal(err)
		}
	}
	s.audit(ctx, client, entity.ActivitySignOut, true, nil)
	return nil
}

// ListSessions 只返回已持久化的会话；调用方自己的会话缺失时补写一行
func (s *securityServiceImpl) ListSessions(ctx context.Context, client request.ClientInfo) ([]*entity.UserSession, error) {
	if client.SessionToken != "" {
		_, err := s.sessions.GetByToken(ctx, client.UserID, client.SessionToken)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.Internal(err)
		}
		if err != nil {
			if err := s.sessions.Upsert(ctx, s.sessionFor(client)); err != nil {
				return nil, xerr.Internal(err)
			}
			zlog.Info("current session restored", zap.String("user_id", client.UserID))
		}
	}

	items, err := s.sessions.List(ctx, client.UserID)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	if client.SessionToken != "" {
		for _, item := range items {
			item.IsCurrent = item.SessionToken == client.SessionToken
		}
	}
	return items, nil
}

func (s *securityServiceImpl) TerminateSession(ctx context.Context, client request.ClientInfo, id string) error {
	target, err := s.sessions.GetByID(ctx, client.UserID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return xerr.NotFound("Session not found")
	}
	if err != nil {
		return xerr.Internal(err)
	}

	own := target.IsCurrent
	if client.SessionToken != "" {
		own = target.SessionToken == client.SessionToken
	}
	if own {
		return xerr.InvalidOperation("Cannot terminate the current session; sign out instead")
	}

	ok, err := s.sessions.Delete(ctx, client.UserID, id)
	if err != nil {
		return xerr.Internal(err)
	}
	if !ok {
		return xerr.NotFound("Session not found")
	}
	s.audit(ctx, client, entity.ActivitySessionTerminated, true, map[string]any{
		"session_id":  id,
		"device_type": target.DeviceType,
		"browser":     target.Browser,
	})
	return nil
}

func (s *securityServiceImpl) ListActivity(ctx context.Context, userID string) ([]*entity.SecurityActivityLog, error) {
	items, err := s.activities.ListLatest(ctx, userID, activityLimit)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return items, nil
}

func (s *securityServiceImpl) GetSettings(ctx context.Context, userID string) (*entity.SecuritySettings, error) {
	settings, err := s.settings.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return settings, nil
}

func (s *securityServiceImpl) UpdateSettings(ctx context.Context, client request.ClientInfo, req request.SettingsRequest) (*entity.SecuritySettings, error) {
	settings, err := s.GetSettings(ctx, client.UserID)
	if err != nil {
		return nil, err
	}
	if req.TwoFactorEnabled != nil {
		settings.TwoFactorEnabled = *req.TwoFactorEnabled
	}
	if req.LoginNotifications != nil {
		settings.LoginNotifications = *req.LoginNotifications
	}
	if req.SuspiciousActivityAlerts != nil {
		settings.SuspiciousActivityAlerts = *req.SuspiciousActivityAlerts
	}
	if req.SessionTimeoutMinutes != nil {
		settings.SessionTimeoutMinutes = min(max(*req.SessionTimeoutMinutes, minSessionTimeout), maxSessionTimeout)
	}
	settings.UpdatedAt = s.now()
	if err := s.settings.Upsert(ctx, settings); err != nil {
		return nil, xerr.Internal(err)
	}
	s.audit(ctx, client, entity.ActivitySettingsUpdated, true, nil)
	return s.GetSettings(ctx, client.UserID)
}

func (s *securityServiceImpl) sessionFor(client request.ClientInfo) *entity.UserSession {
	now := s.now()
	device, browser := useragent.Classify(client.UserAgent)
	session := &entity.UserSession{
		Id:           util.GenerateID(),
		UserId:       client.UserID,
		SessionToken: client.SessionToken,
		UserAgent:    util.Truncate(client.UserAgent, 512),
		DeviceType:   device,
		Browser:      browser,
		IpAddress:    client.IpAddress,
		IsCurrent:    true,
		LastActiveAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if s.sessionTTL > 0 {
		exp := now.Add(s.sessionTTL)
		session.ExpiresAt = &exp
	}
	return session
}

// audit 审计写入失败只记日志，不影响主流程
func (s *securityServiceImpl) audit(ctx context.Context, client request.ClientInfo, activity string, success bool, details map[string]any) {
	row := &entity.SecurityActivityLog{
		Id:           util.GenerateID(),
		UserId:       client.UserID,
		ActivityType: activity,
		Success:      success,
		IpAddress:    client.IpAddress,
		UserAgent:    util.Truncate(client.UserAgent, 512),
		CreatedAt:    s.now(),
	}
	if len(details) > 0 {
		if raw, err := json.Marshal(details); err == nil {
			row.Details = datatypes.JSON(raw)
		}
	}
	if err := s.activities.Append(ctx, row); err != nil {
		zlog.Warn("append security activity failed",
			zap.String("user_id", client.UserID),
			zap.String("activity", activity),
			zap.Error(err))
	}
}
