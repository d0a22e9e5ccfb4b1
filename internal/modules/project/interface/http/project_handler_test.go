package handler

import (
	"net/http"
	"testing"

	"EDT/internal/modules/project/application/service"
	"EDT/internal/modules/project/domain/entity"
	"EDT/internal/modules/project/infrastructure/persistence"
	"EDT/internal/testutil"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newProjectRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := testutil.DB(t)
	h := NewProjectHandler(service.NewProjectService(persistence.NewProjectRepository(db)))
	r := testutil.Router()
	h.Register(&r.RouterGroup)
	return r, db
}

func createProject(t *testing.T, r *gin.Engine, user string) entity.ImprovementProject {
	t.Helper()
	w := testutil.Do(t, r, http.MethodPost, "/projects", user, map[string]any{
		"title": "Reduce compressor downtime", "objective": "MTBF +20%", "system": "Compressor 2", "contractor": true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project: got=%d body=%s", w.Code, w.Body.String())
	}
	var p entity.ImprovementProject
	testutil.Decode(t, w, &p)
	return p
}

func TestProjectChildrenLifecycle(t *testing.T) {
	r, db := newProjectRouter(t)
	p := createProject(t, r, "alice")
	if p.Status != entity.StatusPlanned || !p.Contractor {
		t.Fatalf("defaults: got=%+v", p)
	}

	base := "/projects/" + p.Id
	if w := testutil.Do(t, r, http.MethodPost, base+"/milestones", "alice", map[string]any{"title": "Root cause", "due_date": "2030-02-01"}); w.Code != http.StatusCreated {
		t.Fatalf("milestone: got=%d body=%s", w.Code, w.Body.String())
	}
	w := testutil.Do(t, r, http.MethodPost, base+"/tasks", "alice", map[string]any{"title": "Vibration survey", "assignee": "Sam"})
	var task entity.ProjectTask
	testutil.Decode(t, w, &task)
	if w := testutil.Do(t, r, http.MethodPut, base+"/tasks/"+task.Id, "alice", map[string]any{"title": "Vibration survey", "completed": true}); w.Code != http.StatusOK {
		t.Fatalf("task update: got=%d", w.Code)
	}
	if w := testutil.Do(t, r, http.MethodPost, base+"/updates", "alice", map[string]any{"content": "Bearings replaced"}); w.Code != http.StatusCreated {
		t.Fatalf("update: got=%d", w.Code)
	}

	w = testutil.Do(t, r, http.MethodGet, base, "alice", nil)
	var detail entity.ImprovementProject
	testutil.Decode(t, w, &detail)
	if len(detail.Milestones) != 1 || len(detail.Tasks) != 1 || len(detail.Updates) != 1 || !detail.Tasks[0].Completed {
		t.Fatalf("detail: milestones=%d tasks=%d updates=%d", len(detail.Milestones), len(detail.Tasks), len(detail.Updates))
	}

	if w := testutil.Do(t, r, http.MethodDelete, base, "alice", nil); w.Code != http.StatusOK {
		t.Fatalf("delete: got=%d", w.Code)
	}
	for _, m := range []any{&entity.ProjectMilestone{}, &entity.ProjectTask{}, &entity.ProjectUpdate{}} {
		var n int64
		db.Model(m).Where("project_id = ?", p.Id).Count(&n)
		if n != 0 {
			t.Fatalf("children left behind: %T=%d", m, n)
		}
	}
}

func TestProjectChildrenRequireOwnership(t *testing.T) {
	r, _ := newProjectRouter(t)
	p := createProject(t, r, "alice")
	base := "/projects/" + p.Id

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, base, nil},
		{http.MethodPut, base, map[string]any{"title": "x"}},
		{http.MethodDelete, base, nil},
		{http.MethodPost, base + "/milestones", map[string]any{"title": "m"}},
		{http.MethodPost, base + "/tasks", map[string]any{"title": "t"}},
		{http.MethodPost, base + "/updates", map[string]any{"content": "c"}},
	}
	for _, tc := range cases {
		w := testutil.Do(t, r, tc.method, tc.path, "bob", tc.body)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s as bob: got=%d want=%d", tc.method, tc.path, w.Code, http.StatusNotFound)
		}
	}
}

func TestProjectRejectsUnknownStatus(t *testing.T) {
	r, _ := newProjectRouter(t)
	w := testutil.Do(t, r, http.MethodPost, "/projects", "alice", map[string]any{"title": "x", "status": "cancelled"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got=%d want=%d", w.Code, http.StatusBadRequest)
	}
	w = testutil.Do(t, r, http.MethodGet, "/projects?status=cancelled", "alice", nil)
	if env := testutil.Decode(t, w, nil); w.Code != http.StatusBadRequest || env.Kind != "ValidationError" {
		t.Fatalf("list cancelled: got=%d/%s want=400/ValidationError", w.Code, env.Kind)
	}
}
