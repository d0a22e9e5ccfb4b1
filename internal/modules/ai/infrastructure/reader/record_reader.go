package reader

import (
	"context"
	"fmt"
	"strings"
	"sync"

	goalEntity "EDT/internal/modules/goal/domain/entity"
	projectEntity "EDT/internal/modules/project/domain/entity"
	techlogEntity "EDT/internal/modules/techlog/domain/entity"
	"EDT/pkg/util"
	"EDT/pkg/zlog"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FieldLimit 写入 prompt 的每个文本字段最多保留的字符数
const FieldLimit = 100

type GoalSource interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]*goalEntity.Goal, error)
}

type LogSource interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]*techlogEntity.TechnicalLog, error)
}

type ProjectSource interface {
	ListRecent(ctx context.Context, userID string, limit int) ([]*projectEntity.ImprovementProject, error)
}

// Snapshot 用户最近记录的快照；某一类读取失败时该类为空，并记录在 Failed 中
type Snapshot struct {
	Goals    []*goalEntity.Goal
	Logs     []*techlogEntity.TechnicalLog
	Projects []*projectEntity.ImprovementProject
	Failed   []string
}

// RecordReader 并行读取目标、日志、项目
type RecordReader struct {
	goals    GoalSource
	logs     LogSource
	projects ProjectSource
}

func NewRecordReader(goals GoalSource, logs LogSource, projects ProjectSource) *RecordReader {
	return &RecordReader{goals: goals, logs: logs, projects: projects}
}

// Read 三路读取互不影响：每个 goroutine 自己记录错误并返回 nil，errgroup 只用作汇合点
func (r *RecordReader) Read(ctx context.Context, userID string, limit int) *Snapshot {
	snap := &Snapshot{}
	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	fail := func(kind string, err error) {
		zlog.Warn("record fetch failed", zap.String("user_id", userID), zap.String("kind", kind), zap.Error(err))
		mu.Lock()
		snap.Failed = append(snap.Failed, kind)
		mu.Unlock()
	}

	g.Go(func() error {
		items, err := r.goals.ListRecent(ctx, userID, limit)
		if err != nil {
			fail("goals", err)
			return nil
		}
		snap.Goals = items
		return nil
	})
	g.Go(func() error {
		items, err := r.logs.ListRecent(ctx, userID, limit)
		if err != nil {
			fail("logs", err)
			return nil
		}
		snap.Logs = items
		return nil
	})
	g.Go(func() error {
		items, err := r.projects.ListRecent(ctx, userID, limit)
		if err != nil {
			fail("projects", err)
			return nil
		}
		snap.Projects = items
		return nil
	})
	_ = g.Wait()

	if snap.Goals == nil {
		snap.Goals = []*goalEntity.Goal{}
	}
	if snap.Logs == nil {
		snap.Logs = []*techlogEntity.TechnicalLog{}
	}
	if snap.Projects == nil {
		snap.Projects = []*projectEntity.ImprovementProject{}
	}
	return snap
}

func (s *Snapshot) Empty() bool {
	return len(s.Goals) == 0 && len(s.Logs) == 0 && len(s.Projects) == 0
}

// Lines 每条记录一行，文本字段截断到 FieldLimit
func (s *Snapshot) Lines() []string {
	lines := make([]string, 0, len(s.Goals)+len(s.Logs)+len(s.Projects))
	for _, g := range s.Goals {
		line := fmt.Sprintf("Goal: %s | category: %s | status: %s | progress: %d%%",
			clip(g.Title), clip(g.Category), g.Status, g.Progress)
		if g.Deadline != nil {
			line += " | deadline: " + g.Deadline.Format("2006-01-02")
		}
		if d := clip(g.Description); d != "" {
			line += " | " + d
		}
		lines = append(lines, line)
	}
	for _, l := range s.Logs {
		line := fmt.Sprintf("Log: %s | system: %s | %s", clip(l.Title), clip(l.System), clip(l.Description))
		if r := clip(l.Resolution); r != "" {
			line += " | resolution: " + r
		}
		if len(l.Tags) > 0 {
			line += " | tags: " + clip(strings.Join(l.Tags, ", "))
		}
		lines = append(lines, line)
	}
	for _, p := range s.Projects {
		line := fmt.Sprintf("Project: %s | system: %s | status: %s | %s", clip(p.Title), clip(p.System), p.Status, clip(p.Objective))
		if r := clip(p.Results); r != "" {
			line += " | results: " + r
		}
		lines = append(lines, line)
	}
	return lines
}

// Summary 渲染成写入 prompt 的上下文文本
func (s *Snapshot) Summary() string {
	var b strings.Builder
	section := func(title string, n int) {
		fmt.Fprintf(&b, "%s (%d):\n", title, n)
	}
	lines := s.Lines()
	i := 0
	for _, part := range []struct {
		title string
		n     int
	}{{"Goals", len(s.Goals)}, {"Technical logs", len(s.Logs)}, {"Improvement projects", len(s.Projects)}} {
		section(part.title, part.n)
		if part.n == 0 {
			b.WriteString("- none\n")
		}
		for _, line := range lines[i : i+part.n] {
			b.WriteString("- " + line + "\n")
		}
		i += part.n
	}
	return strings.TrimSpace(b.String())
}

func clip(s string) string {
	return util.Truncate(strings.Join(strings.Fields(s), " "), FieldLimit)
}
