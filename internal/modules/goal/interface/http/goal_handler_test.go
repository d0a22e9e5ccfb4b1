package handler

import (
	"net/http"
	"testing"

	"EDT/internal/modules/goal/application/service"
	"EDT/internal/modules/goal/domain/entity"
	"EDT/internal/modules/goal/infrastructure/persistence"
	"EDT/internal/testutil"
	"EDT/pkg/xerr"

	"github.com/gin-gonic/gin"
)

func newGoalRouter(t *testing.T) *gin.Engine {
	h := NewGoalHandler(service.NewGoalService(persistence.NewGoalRepository(testutil.DB(t))))
	r := testutil.Router()
	r.GET("/goals", h.List)
	r.POST("/goals", h.Create)
	r.GET("/goals/:id", h.Get)
	r.PUT("/goals/:id", h.Update)
	r.DELETE("/goals/:id", h.Delete)
	return r
}

func TestGoalCRUD(t *testing.T) {
	r := newGoalRouter(t)

	w := testutil.Do(t, r, http.MethodPost, "/goals", "alice", map[string]any{
		"title": "Earn PE license", "category": "career", "deadline": "2030-01-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got=%d want=%d body=%s", w.Code, http.StatusCreated, w.Body.String())
	}
	var created entity.Goal
	testutil.Decode(t, w, &created)
	if created.Status != entity.StatusNotStarted || created.Deadline == nil {
		t.Fatalf("create defaults: got=%+v", created)
	}

	w = testutil.Do(t, r, http.MethodPut, "/goals/"+created.Id, "alice", map[string]any{
		"title": "Earn PE license", "status": "completed",
	})
	var updated entity.Goal
	testutil.Decode(t, w, &updated)
	if w.Code != http.StatusOK || updated.Status != entity.StatusCompleted || updated.Progress != 100 || updated.Deadline != nil {
		t.Fatalf("update: code=%d got=%+v", w.Code, updated)
	}

	w = testutil.Do(t, r, http.MethodGet, "/goals?status=completed", "alice", nil)
	var list []entity.Goal
	testutil.Decode(t, w, &list)
	if len(list) != 1 {
		t.Fatalf("list: got=%d want=1", len(list))
	}

	w = testutil.Do(t, r, http.MethodDelete, "/goals/"+created.Id, "alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: got=%d", w.Code)
	}
	w = testutil.Do(t, r, http.MethodGet, "/goals/"+created.Id, "alice", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got=%d want=%d", w.Code, http.StatusNotFound)
	}
}

func TestGoalCrossUserIsNotFound(t *testing.T) {
	r := newGoalRouter(t)
	w := testutil.Do(t, r, http.MethodPost, "/goals", "alice", map[string]any{"title": "private"})
	var g entity.Goal
	testutil.Decode(t, w, &g)

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, map[string]any{"title": "x"}},
		{http.MethodDelete, nil},
	} {
		w := testutil.Do(t, r, tc.method, "/goals/"+g.Id, "bob", tc.body)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s as bob: got=%d want=%d", tc.method, w.Code, http.StatusNotFound)
		}
	}
}

func TestGoalValidation(t *testing.T) {
	r := newGoalRouter(t)
	cases := []map[string]any{
		{"title": "   "},
		{"title": "x", "status": "paused"},
		{"title": "x", "deadline": "someday"},
	}
	for _, body := range cases {
		w := testutil.Do(t, r, http.MethodPost, "/goals", "alice", body)
		env := testutil.Decode(t, w, nil)
		if w.Code != http.StatusBadRequest || env.Success || env.Kind != "ValidationError" {
			t.Fatalf("body %v: code=%d env=%+v", body, w.Code, env)
		}
	}
	if w := testutil.Do(t, r, http.MethodGet, "/goals", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: got=%d want=%d", w.Code, http.StatusUnauthorized)
	}
}

func TestGoalStatusEnumRejectedAtBind(t *testing.T) {
	r := newGoalRouter(t)
	w := testutil.Do(t, r, http.MethodPost, "/goals", "alice", map[string]any{"title": "x", "status": "paused"})
	env := testutil.Decode(t, w, nil)
	if w.Code != http.StatusBadRequest || env.Kind != xerr.KindValidation || env.Error != xerr.ErrParam.Message {
		t.Fatalf("create paused: got=%d/%s/%q want=400/%s/%q", w.Code, env.Kind, env.Error, xerr.KindValidation, xerr.ErrParam.Message)
	}
	w = testutil.Do(t, r, http.MethodPost, "/goals", "alice", map[string]any{"title": "x", "status": "Completed"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("create Completed: got=%d want=%d", w.Code, http.StatusBadRequest)
	}
	w = testutil.Do(t, r, http.MethodGet, "/goals?status=paused", "alice", nil)
	env = testutil.Decode(t, w, nil)
	if w.Code != http.StatusBadRequest || env.Error != xerr.ErrParam.Message {
		t.Fatalf("list paused: got=%d/%q want=400/%q", w.Code, env.Error, xerr.ErrParam.Message)
	}
	w = testutil.Do(t, r, http.MethodPost, "/goals", "alice", map[string]any{"title": "x"})
	var created entity.Goal
	testutil.Decode(t, w, &created)
	if w.Code != http.StatusCreated || created.Status != entity.StatusNotStarted {
		t.Fatalf("default status: got=%d/%s want=201/%s", w.Code, created.Status, entity.StatusNotStarted)
	}
}
