package service

import (
	"context"
	"sync"

	"EDT/pkg/zlog"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type StatusCounter interface {
	CountByStatus(ctx context.Context, userID string) (map[string]int64, error)
}

type Counter interface {
	Count(ctx context.Context, userID string) (int64, error)
}

type UnreadCounter interface {
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type StatusCount struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// Stats 仪表盘汇总；某项统计失败时该项为零值，名称记在 Failed
type Stats struct {
	Goals               StatusCount `json:"goals"`
	Logs                int64       `json:"logs"`
	Projects            StatusCount `json:"projects"`
	Insights            int64       `json:"insights"`
	UnreadNotifications int64       `json:"unread_notifications"`
	Failed              []string    `json:"failed,omitempty"`
}

type DashboardService interface {
	Stats(ctx context.Context, userID string) *Stats
}

type dashboardServiceImpl struct {
	goals         StatusCounter
	logs          Counter
	projects      StatusCounter
	insights      Counter
	notifications UnreadCounter
}

func NewDashboardService(goals StatusCounter, logs Counter, projects StatusCounter, insights Counter, notifications UnreadCounter) DashboardService {
	return &dashboardServiceImpl{goals: goals, logs: logs, projects: projects, insights: insights, notifications: notifications}
}

// Stats 五项统计并行执行，互不取消
func (s *dashboardServiceImpl) Stats(ctx context.Context, userID string) *Stats {
	st := &Stats{
		Goals:    StatusCount{ByStatus: map[string]int64{}},
		Projects: StatusCount{ByStatus: map[string]int64{}},
	}
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	fail := func(name string, err error) {
		zlog.Warn("dashboard count failed", zap.String("user_id", userID), zap.String("item", name), zap.Error(err))
		mu.Lock()
		st.Failed = append(st.Failed, name)
		mu.Unlock()
	}

	g.Go(func() error {
		m, err := s.goals.CountByStatus(ctx, userID)
		if err != nil {
			fail("goals", err)
			return nil
		}
		st.Goals = statusCount(m)
		return nil
	})
	g.Go(func() error {
		n, err := s.logs.Count(ctx, userID)
		if err != nil {
			fail("logs", err)
			return nil
		}
		st.Logs = n
		return nil
	})
	g.Go(func() error {
		m, err := s.projects.CountByStatus(ctx, userID)
		if err != nil {
			fail("projects", err)
			return nil
		}
		st.Projects = statusCount(m)
		return nil
	})
	g.Go(func() error {
		n, err := s.insights.Count(ctx, userID)
		if err != nil {
			fail("insights", err)
			return nil
		}
		st.Insights = n
		return nil
	})
	g.Go(func() error {
		n, err := s.notifications.CountUnread(ctx, userID)
		if err != nil {
			fail("notifications", err)
			return nil
		}
		st.UnreadNotifications = n
		return nil
	})
	_ = g.Wait()
	return st
}

func statusCount(m map[string]int64) StatusCount {
	sc := StatusCount{ByStatus: map[string]int64{}}
	for k, v := range m {
		sc.ByStatus[k] = v
		sc.Total += v
	}
	return sc
}
