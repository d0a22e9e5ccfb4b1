package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"EDT/internal/modules/techlog/application/service"
	"EDT/internal/modules/techlog/infrastructure/persistence"
	"EDT/internal/testutil"

	"github.com/gin-gonic/gin"
)

func newLogRouter(t *testing.T) *gin.Engine {
	h := NewTechnicalLogHandler(service.NewTechnicalLogService(persistence.NewTechnicalLogRepository(testutil.DB(t))))
	r := testutil.Router()
	r.GET("/logs", h.List)
	r.POST("/logs", h.Create)
	r.GET("/logs/:id", h.Get)
	r.PUT("/logs/:id", h.Update)
	r.DELETE("/logs/:id", h.Delete)
	return r
}

func TestCreateLogDefaultsEmptyArrays(t *testing.T) {
	r := newLogRouter(t)
	w := testutil.Do(t, r, http.MethodPost, "/logs", "alice", map[string]any{
		"title": "DB timeout", "system": "Backend", "description": "Connection pool exhausted during peak",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got=%d body=%s", w.Code, w.Body.String())
	}
	// tags/images 必须序列化为 [] 而不是 null
	var raw map[string]json.RawMessage
	testutil.Decode(t, w, &raw)
	if string(raw["tags"]) != "[]" || string(raw["images"]) != "[]" {
		t.Fatalf("defaults: tags=%s images=%s", raw["tags"], raw["images"])
	}

	var id string
	_ = json.Unmarshal(raw["id"], &id)
	w = testutil.Do(t, r, http.MethodGet, "/logs/"+id, "alice", nil)
	testutil.Decode(t, w, &raw)
	if string(raw["tags"]) != "[]" {
		t.Fatalf("reloaded tags: %s", raw["tags"])
	}
}

func TestLogTagsCleanedAndFiltered(t *testing.T) {
	r := newLogRouter(t)
	testutil.Do(t, r, http.MethodPost, "/logs", "alice", map[string]any{
		"title": "PLC fault", "system": "Line 3", "description": "watchdog",
		"tags": []string{" plc ", "", "plc", strings.Repeat("x", 50)},
	})
	testutil.Do(t, r, http.MethodPost, "/logs", "alice", map[string]any{
		"title": "Other", "system": "Line 4", "description": "n/a",
	})

	w := testutil.Do(t, r, http.MethodGet, "/logs?tag=PLC", "alice", nil)
	var logs []struct {
		Tags []string `json:"tags"`
	}
	testutil.Decode(t, w, &logs)
	if len(logs) != 1 || len(logs[0].Tags) != 2 || logs[0].Tags[0] != "plc" || len(logs[0].Tags[1]) != 30 {
		t.Fatalf("filtered logs: %+v", logs)
	}

	w = testutil.Do(t, r, http.MethodGet, "/logs?system=Line%204", "alice", nil)
	testutil.Decode(t, w, &logs)
	if len(logs) != 1 {
		t.Fatalf("system filter: got=%d want=1", len(logs))
	}
}

func TestLogCrossUserIsNotFound(t *testing.T) {
	r := newLogRouter(t)
	w := testutil.Do(t, r, http.MethodPost, "/logs", "alice", map[string]any{"title": "t", "description": "d"})
	var l struct {
		Id string `json:"id"`
	}
	testutil.Decode(t, w, &l)

	for _, m := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := testutil.Do(t, r, m, "/logs/"+l.Id, "bob", map[string]any{"title": "t", "description": "d"})
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s as bob: got=%d want=%d", m, w.Code, http.StatusNotFound)
		}
	}
}
