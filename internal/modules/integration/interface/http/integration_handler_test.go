package handler

import (
	"net/http"
	"testing"

	"EDT/internal/modules/integration/application/service"
	"EDT/internal/modules/integration/domain/entity"
	"EDT/internal/modules/integration/infrastructure/persistence"
	"EDT/internal/testutil"

	"github.com/gin-gonic/gin"
)

func newIntegrationRouter(t *testing.T, failureRate float64) *gin.Engine {
	svc := service.NewIntegrationService(persistence.NewIntegrationRepository(testutil.DB(t)), service.NewSimulator(0, failureRate, 7))
	r := testutil.Router()
	NewIntegrationHandler(svc).Register(&r.RouterGroup)
	return r
}

func TestIntegrationSyncAccumulates(t *testing.T) {
	r := newIntegrationRouter(t, 0)

	w := testutil.Do(t, r, http.MethodPost, "/integrations", "alice", map[string]any{"name": "Plant historian", "type": "historian"})
	var item entity.Integration
	testutil.Decode(t, w, &item)
	if w.Code != http.StatusCreated || item.Status != entity.StatusDisconnected || item.Type != entity.TypeHistorian {
		t.Fatalf("create: code=%d item=%+v", w.Code, item)
	}

	w = testutil.Do(t, r, http.MethodPost, "/integrations/"+item.Id+"/test", "alice", nil)
	testutil.Decode(t, w, &item)
	if item.Status != entity.StatusConnected || item.LastTestedAt == nil {
		t.Fatalf("test: got=%+v", item)
	}

	for i := 0; i < 2; i++ {
		w = testutil.Do(t, r, http.MethodPost, "/integrations/"+item.Id+"/sync", "alice", nil)
		testutil.Decode(t, w, &item)
	}
	if item.SyncCount != 2 || item.RecordsSynced < 100 || item.LastSyncAt == nil {
		t.Fatalf("sync: got=%+v", item)
	}

	w = testutil.Do(t, r, http.MethodGet, "/integrations/"+item.Id, "alice", nil)
	var stored entity.Integration
	testutil.Decode(t, w, &stored)
	if stored.SyncCount != 2 || stored.RecordsSynced != item.RecordsSynced {
		t.Fatalf("persisted: got=%+v want records=%d", stored, item.RecordsSynced)
	}
}

func TestIntegrationFailureAndOwnership(t *testing.T) {
	r := newIntegrationRouter(t, 1)

	w := testutil.Do(t, r, http.MethodPost, "/integrations", "alice", map[string]any{"name": "CMMS", "type": "cmms"})
	var item entity.Integration
	testutil.Decode(t, w, &item)

	w = testutil.Do(t, r, http.MethodPost, "/integrations/"+item.Id+"/sync", "alice", nil)
	testutil.Decode(t, w, &item)
	if item.Status != entity.StatusError || item.ErrorCount != 1 || item.SyncCount != 0 {
		t.Fatalf("failed sync: got=%+v", item)
	}

	w = testutil.Do(t, r, http.MethodPost, "/integrations/"+item.Id+"/sync", "bob", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-user sync: got=%d want=%d", w.Code, http.StatusNotFound)
	}

	w = testutil.Do(t, r, http.MethodPost, "/integrations", "alice", map[string]any{"name": "x", "type": "telnet"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad type: got=%d want=%d", w.Code, http.StatusBadRequest)
	}
}
