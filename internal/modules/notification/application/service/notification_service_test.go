package service

import (
	"context"
	"testing"
	"time"

	goalEntity "EDT/internal/modules/goal/domain/entity"
	goalPersistence "EDT/internal/modules/goal/infrastructure/persistence"
	"EDT/internal/modules/notification/domain/entity"
	"EDT/internal/modules/notification/infrastructure/persistence"
	"EDT/internal/testutil"
	"EDT/pkg/util"
	"EDT/pkg/xerr"
)

func TestGenerateOverdueAndDueSoonOnce(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	goals := goalPersistence.NewGoalRepository(db)
	svc := NewNotificationService(persistence.NewNotificationRepository(db), goals)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time { v := now.Add(d); return &v }
	seed := []*goalEntity.Goal{
		{Title: "overdue", Status: goalEntity.StatusInProgress, Deadline: at(-48 * time.Hour)},
		{Title: "soon", Status: goalEntity.StatusNotStarted, Deadline: at(24 * time.Hour)},
		{Title: "later", Status: goalEntity.StatusNotStarted, Deadline: at(30 * 24 * time.Hour)},
		{Title: "done", Status: goalEntity.StatusCompleted, Deadline: at(-48 * time.Hour)},
		{Title: "no deadline", Status: goalEntity.StatusStalled},
	}
	for _, g := range seed {
		g.Id = util.GenerateID()
		g.UserId = "alice"
		if err := goals.Create(ctx, g); err != nil {
			t.Fatalf("seed goal: %v", err)
		}
	}

	res, err := svc.Generate(ctx, "alice", now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.Created != 2 {
		t.Fatalf("created: got=%d want=2", res.Created)
	}
	types := map[string]string{}
	for _, n := range res.Items {
		types[n.RelatedId] = n.Type
	}
	if types[seed[0].Id] != entity.TypeGoalOverdue || types[seed[1].Id] != entity.TypeGoalDueSoon {
		t.Fatalf("types: got=%v", types)
	}

	again, err := svc.Generate(ctx, "alice", now)
	if err != nil || again.Created != 0 {
		t.Fatalf("second run should not duplicate: created=%d err=%v", again.Created, err)
	}

	other, err := svc.Generate(ctx, "bob", now)
	if err != nil || other.Created != 0 {
		t.Fatalf("bob sees alice's goals: created=%d err=%v", other.Created, err)
	}
}

func TestMarkReadAndOwnership(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := persistence.NewNotificationRepository(db)
	svc := NewNotificationService(repo, goalPersistence.NewGoalRepository(db))

	n := &entity.Notification{Id: util.GenerateID(), UserId: "alice", Type: entity.TypeGoalOverdue, Title: "Goal Overdue", RelatedId: "g1"}
	if err := repo.CreateBatch(ctx, []*entity.Notification{n}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.MarkRead(ctx, "bob", n.Id); !xerr.IsKind(err, xerr.KindNotFound) {
		t.Fatalf("cross-user mark read: got=%v want NotFound", err)
	}
	if cnt, _ := svc.CountUnread(ctx, "alice"); cnt != 1 {
		t.Fatalf("unread: got=%d want=1", cnt)
	}
	if err := svc.MarkRead(ctx, "alice", n.Id); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	unread, err := svc.List(ctx, "alice", true)
	if err != nil || len(unread) != 0 {
		t.Fatalf("unread list: got=%d err=%v", len(unread), err)
	}
	if err := svc.Delete(ctx, "bob", n.Id); !xerr.IsKind(err, xerr.KindNotFound) {
		t.Fatalf("cross-user delete: got=%v", err)
	}
	if err := svc.Delete(ctx, "alice", n.Id); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
