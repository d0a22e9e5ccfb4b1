package service

import (
	"context"
	"fmt"
	"time"

	goalEntity "EDT/internal/modules/goal/domain/entity"
	"EDT/internal/modules/notification/domain/entity"
	"EDT/internal/modules/notification/domain/repository"
	"EDT/pkg/util"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"go.uber.org/zap"
)

// DueSoonWindow 截止日期在此窗口内视为即将到期
const DueSoonWindow = 3 * 24 * time.Hour

// GoalSource 只需要未完成且带截止日期的目标
type GoalSource interface {
	ListOpenWithDeadline(ctx context.Context, userID string) ([]*goalEntity.Goal, error)
}

type GenerateResult struct {
	Created int                    `json:"created"`
	Items   []*entity.Notification `json:"items"`
}

type NotificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool) ([]*entity.Notification, error)
	Generate(ctx context.Context, userID string, now time.Time) (*GenerateResult, error)
	MarkRead(ctx context.Context, userID string, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID string, id string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type notificationServiceImpl struct {
	repo  repository.NotificationRepository
	goals GoalSource
}

func NewNotificationService(repo repository.NotificationRepository, goals GoalSource) NotificationService {
	return &notificationServiceImpl{repo: repo, goals: goals}
}

func (s *notificationServiceImpl) List(ctx context.Context, userID string, unreadOnly bool) ([]*entity.Notification, error) {
	items, err := s.repo.List(ctx, userID, unreadOnly)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	return items, nil
}

// Generate 扫描目标截止日期，每个 (type, related_id) 只生成一次
func (s *notificationServiceImpl) Generate(ctx context.Context, userID string, now time.Time) (*GenerateResult, error) {
	goals, err := s.goals.ListOpenWithDeadline(ctx, userID)
	if err != nil {
		return nil, xerr.Internal(err)
	}
	existing, err := s.repo.ExistingKeys(ctx, userID, []string{entity.TypeGoalOverdue, entity.TypeGoalDueSoon})
	if err != nil {
		return nil, xerr.Internal(err)
	}

	items := make([]*entity.Notification, 0)
	for _, g := range goals {
		n := notificationFor(g, now)
		if n == nil || existing[n.Type+"|"+n.RelatedId] {
			continue
		}
		n.Id = util.GenerateID()
		n.UserId = userID
		n.CreatedAt = now
		existing[n.Type+"|"+n.RelatedId] = true
		items = append(items, n)
	}
	if err := s.repo.CreateBatch(ctx, items); err != nil {
		return nil, xerr.Internal(err)
	}
	if len(items) > 0 {
		zlog.Info("notifications generated", zap.String("user_id", userID), zap.Int("count", len(items)))
	}
	return &GenerateResult{Created: len(items), Items: items}, nil
}

func notificationFor(g *goalEntity.Goal, now time.Time) *entity.Notification {
	switch {
	case g.IsOverdue(now):
		return &entity.Notification{
			Type:      entity.TypeGoalOverdue,
			Title:     "Goal Overdue",
			Message:   fmt.Sprintf("%q passed its deadline on %s.", g.Title, g.Deadline.Format("2006-01-02")),
			RelatedId: g.Id,
		}
	case g.Deadline != nil && g.Status != goalEntity.StatusCompleted && g.Deadline.Sub(now) <= DueSoonWindow:
		return &entity.Notification{
			Type:      entity.TypeGoalDueSoon,
			Title:     "Goal Due Soon",
			Message:   fmt.Sprintf("%q is due on %s.", g.Title, g.Deadline.Format("2006-01-02")),
			RelatedId: g.Id,
		}
	}
	return nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID string, id string) error {
	ok, err := s.repo.MarkRead(ctx, userID, id, time.Now().UTC())
	if err != nil {
		return xerr.Internal(err)
	}
	if !ok {
		return xerr.NotFound("Notification not found")
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, xerr.Internal(err)
	}
	return n, nil
}

func (s *notificationServiceImpl) Delete(ctx context.Context, userID string, id string) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return xerr.Internal(err)
	}
	if !ok {
		return xerr.NotFound("Notification not found")
	}
	return nil
}

func (s *notificationServiceImpl) CountUnread(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, xerr.Internal(err)
	}
	return n, nil
}
