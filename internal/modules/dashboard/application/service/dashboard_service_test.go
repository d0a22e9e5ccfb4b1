package service

import (
	"context"
	"errors"
	"testing"
)

type statusStub struct {
	m   map[string]int64
	err error
}

func (s statusStub) CountByStatus(context.Context, string) (map[string]int64, error) {
	return s.m, s.err
}

type countStub struct {
	n   int64
	err error
}

func (s countStub) Count(context.Context, string) (int64, error)       { return s.n, s.err }
func (s countStub) CountUnread(context.Context, string) (int64, error) { return s.n, s.err }

func TestStats_AllSucceed(t *testing.T) {
	svc := NewDashboardService(
		statusStub{m: map[string]int64{"completed": 2, "in-progress": 3}},
		countStub{n: 7},
		statusStub{m: map[string]int64{"ongoing": 1}},
		countStub{n: 4},
		countStub{n: 5},
	)
	st := svc.Stats(context.Background(), "u1")
	if st.Goals.Total != 5 || st.Goals.ByStatus["completed"] != 2 {
		t.Fatalf("goals: got=%+v", st.Goals)
	}
	if st.Logs != 7 || st.Projects.Total != 1 || st.Insights != 4 || st.UnreadNotifications != 5 {
		t.Fatalf("stats: got=%+v", st)
	}
	if len(st.Failed) != 0 {
		t.Fatalf("failed: got=%v want=[]", st.Failed)
	}
}

func TestStats_OneFailureDoesNotAbort(t *testing.T) {
	svc := NewDashboardService(
		statusStub{m: map[string]int64{"stalled": 1}},
		countStub{err: errors.New("no such table: technical_logs")},
		statusStub{m: map[string]int64{}},
		countStub{n: 2},
		countStub{n: 0},
	)
	st := svc.Stats(context.Background(), "u1")
	if len(st.Failed) != 1 || st.Failed[0] != "logs" {
		t.Fatalf("failed: got=%v want=[logs]", st.Failed)
	}
	if st.Goals.Total != 1 || st.Insights != 2 || st.Logs != 0 {
		t.Fatalf("stats: got=%+v", st)
	}
}
