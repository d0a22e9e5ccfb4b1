package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"EDT/internal/config"
	"EDT/internal/initial"
	"EDT/internal/testutil"
	"EDT/pkg/util/myjwt"
	"EDT/pkg/xerr"

	"github.com/gin-gonic/gin"
)

type server struct {
	t    *testing.T
	h    nethttp.Handler
	conf *config.Config
}

// newServer 走完整的 NewApp 流程：内存 sqlite，无 Redis，无模型凭证
func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("GEMINI_API_KEY", "")

	conf := config.Default()
	config.ApplyEnv(conf)
	conf.DatabaseConfig = config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", strings.ReplaceAll(t.Name(), "/", "_")),
	}
	conf.RedisConfig = config.RedisConfig{}
	conf.JwtConfig = config.JwtConfig{Key: "test-secret", Issuer: "EDT", ExpireHours: 1}
	conf.MainConfig.DemoDelayMs = 0

	app, err := initial.NewApp(context.Background(), conf)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return &server{t: t, h: NewEngine(app), conf: conf}
}

func (s *server) token(user string, session string) string {
	s.t.Helper()
	tok, err := myjwt.GenerateToken(s.conf.JwtConfig, user, session, user+"@example.com")
	if err != nil {
		s.t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func (s *server) do(method string, path string, token string, body any) (*httptest.ResponseRecorder, testutil.Envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/124.0 Safari/537.36")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.h.ServeHTTP(w, req)
	return w, testutil.Decode(s.t, w, nil)
}

func decodeData(t *testing.T, env testutil.Envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v data=%s", err, string(env.Data))
	}
}

func TestTechnicalLogDefaults(t *testing.T) {
	s := newServer(t)
	tok := s.token("user-a", "sess-1")

	w, env := s.do(nethttp.MethodPost, "/api/technical-logs", tok, map[string]string{
		"title": "DB timeout", "system": "Backend", "description": "Connection pool exhausted under load",
	})
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("create log: got=%d want=%d body=%s", w.Code, nethttp.StatusCreated, w.Body.String())
	}
	var row map[string]any
	decodeData(t, env, &row)
	tags, _ := row["tags"].([]any)
	images, _ := row["images"].([]any)
	if row["tags"] == nil || len(tags) != 0 || row["images"] == nil || len(images) != 0 {
		t.Fatalf("defaults: got tags=%v images=%v want=[] []", row["tags"], row["images"])
	}
	if row["id"] == "" || row["title"] != "DB timeout" {
		t.Fatalf("stored row: got=%v", row)
	}
}

func TestSuggestTagsWithoutKey(t *testing.T) {
	s := newServer(t)
	w, env := s.do(nethttp.MethodPost, "/api/ai/suggest-tags", s.token("user-a", ""), map[string]string{
		"title": "DB timeout", "system": "Backend", "description": "Connection pool exhausted",
	})
	if w.Code != nethttp.StatusInternalServerError || env.Error != "Configuration error" {
		t.Fatalf("suggest-tags: got=%d %q want=500 \"Configuration error\"", w.Code, env.Error)
	}
}

func TestSmartGoalsWithoutKey(t *testing.T) {
	s := newServer(t)
	w, env := s.do(nethttp.MethodPost, "/api/ai/smart-goals", s.token("user-a", ""), map[string]string{
		"goal": "Get better at root cause analysis", "deadline": "2026-12-31",
	})
	if w.Code != nethttp.StatusOK || env.Mode != "demo" {
		t.Fatalf("smart-goals: got=%d mode=%q want=200 demo", w.Code, env.Mode)
	}
	var data map[string]any
	decodeData(t, env, &data)
	for _, k := range []string{"specific", "measurable", "achievable", "relevant", "time_bound"} {
		if s, _ := data[k].(string); s == "" {
			t.Fatalf("smart-goals field %s empty: %v", k, data)
		}
	}
}

func TestOverdueGoalNotification(t *testing.T) {
	s := newServer(t)
	tok := s.token("user-a", "")
	past := time.Now().AddDate(0, 0, -5).Format("2006-01-02")

	w, env := s.do(nethttp.MethodPost, "/api/goals", tok, map[string]any{
		"title": "Finish PLC course", "status": "in-progress", "deadline": past,
	})
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("create goal: got=%d body=%s", w.Code, w.Body.String())
	}
	var goal struct {
		Id string `json:"id"`
	}
	decodeData(t, env, &goal)

	for i := 0; i < 2; i++ {
		w, _ = s.do(nethttp.MethodPost, "/api/notifications/generate", tok, nil)
		if w.Code != nethttp.StatusOK {
			t.Fatalf("generate #%d: got=%d body=%s", i, w.Code, w.Body.String())
		}
	}

	_, env = s.do(nethttp.MethodGet, "/api/notifications", tok, nil)
	var items []struct {
		Title     string `json:"title"`
		RelatedId string `json:"related_id"`
	}
	decodeData(t, env, &items)
	if len(items) != 1 {
		t.Fatalf("notifications: got=%d want=1 (%+v)", len(items), items)
	}
	if items[0].Title != "Goal Overdue" || items[0].RelatedId != goal.Id {
		t.Fatalf("notification: got=%+v want title=Goal Overdue related=%s", items[0], goal.Id)
	}
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	s := newServer(t)
	_, env := s.do(nethttp.MethodPost, "/api/goals", s.token("user-a", ""), map[string]any{"title": "Private goal"})
	var goal struct {
		Id string `json:"id"`
	}
	decodeData(t, env, &goal)

	other := s.token("user-b", "")
	for _, method := range []string{nethttp.MethodGet, nethttp.MethodDelete} {
		w, env := s.do(method, "/api/goals/"+goal.Id, other, nil)
		if w.Code != nethttp.StatusNotFound || env.Kind != xerr.KindNotFound {
			t.Fatalf("%s foreign goal: got=%d/%s want=404", method, w.Code, env.Kind)
		}
	}
	w, _ := s.do(nethttp.MethodPut, "/api/goals/"+goal.Id, other, map[string]any{"title": "hijack"})
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("PUT foreign goal: got=%d want=404", w.Code)
	}
	w, _ = s.do(nethttp.MethodGet, "/api/goals/"+goal.Id, s.token("user-a", ""), nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("owner read: got=%d want=200", w.Code)
	}
}

func TestRequiresBearerToken(t *testing.T) {
	s := newServer(t)
	w, env := s.do(nethttp.MethodGet, "/api/goals", "", nil)
	if w.Code != nethttp.StatusUnauthorized || env.Kind != xerr.KindAuthentication {
		t.Fatalf("no token: got=%d/%s want=401", w.Code, env.Kind)
	}
	w, _ = s.do(nethttp.MethodGet, "/api/goals", "not-a-jwt", nil)
	if w.Code != nethttp.StatusUnauthorized {
		t.Fatalf("bad token: got=%d want=401", w.Code)
	}
}

func TestTerminateOwnSessionRejected(t *testing.T) {
	s := newServer(t)
	laptop := s.token("user-a", "sess-laptop")
	phone := s.token("user-a", "sess-phone")

	for _, tok := range []string{laptop, phone} {
		if w, _ := s.do(nethttp.MethodPost, "/api/security/sign-in", tok, nil); w.Code != nethttp.StatusOK {
			t.Fatalf("sign-in: got=%d body=%s", w.Code, w.Body.String())
		}
	}

	_, env := s.do(nethttp.MethodGet, "/api/security/sessions", laptop, nil)
	var sessions []struct {
		Id        string `json:"id"`
		IsCurrent bool   `json:"is_current"`
	}
	decodeData(t, env, &sessions)
	if len(sessions) != 2 {
		t.Fatalf("sessions: got=%d want=2", len(sessions))
	}
	var own, other string
	for _, sess := range sessions {
		if sess.IsCurrent {
			own = sess.Id
		} else {
			other = sess.Id
		}
	}
	if own == "" || other == "" {
		t.Fatalf("current flag: got=%+v", sessions)
	}

	w, env := s.do(nethttp.MethodDelete, "/api/security/sessions/"+own, laptop, nil)
	if w.Code != nethttp.StatusConflict || env.Kind != xerr.KindInvalidOperation {
		t.Fatalf("terminate own: got=%d/%s want=409", w.Code, env.Kind)
	}
	w, _ = s.do(nethttp.MethodDelete, "/api/security/sessions/"+other, laptop, nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("terminate other: got=%d want=200", w.Code)
	}
}

func TestHealthAndDashboard(t *testing.T) {
	s := newServer(t)
	w, env := s.do(nethttp.MethodGet, "/api/health", "", nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("health: got=%d", w.Code)
	}
	var health HealthStatus
	decodeData(t, env, &health)
	if health.Database != initial.StateConnected || health.AIMode != "demo" || health.Cache != initial.StateDisconnected {
		t.Fatalf("health: got=%+v", health)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}

	tok := s.token("user-a", "")
	s.do(nethttp.MethodPost, "/api/goals", tok, map[string]any{"title": "g1", "status": "completed"})
	s.do(nethttp.MethodPost, "/api/goals", tok, map[string]any{"title": "g2"})
	_, env = s.do(nethttp.MethodGet, "/api/dashboard/stats", tok, nil)
	var stats struct {
		Goals struct {
			Total    int64            `json:"total"`
			ByStatus map[string]int64 `json:"by_status"`
		} `json:"goals"`
		Logs int64 `json:"logs"`
	}
	decodeData(t, env, &stats)
	if stats.Goals.Total != 2 || stats.Goals.ByStatus["completed"] != 1 || stats.Logs != 0 {
		t.Fatalf("dashboard: got=%+v", stats)
	}
}
