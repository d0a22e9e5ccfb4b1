package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"EDT/internal/config"
	"EDT/internal/middleware/jwt"
	"EDT/internal/modules/security/application/service"
	"EDT/internal/modules/security/domain/entity"
	"EDT/internal/modules/security/infrastructure/captcha"
	"EDT/internal/modules/security/infrastructure/persistence"
	"EDT/internal/testutil"

	"github.com/gin-gonic/gin"
)

const (
	chromeUA  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	firefoxUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14.0; rv:125.0) Gecko/20100101 Firefox/125.0"
)

func newSecurityRouter(t *testing.T, captchaConf config.CaptchaConfig) *gin.Engine {
	db := testutil.DB(t)
	svc := service.NewSecurityService(
		persistence.NewSessionRepository(db),
		persistence.NewActivityRepository(db),
		persistence.NewSettingsRepository(db),
		24*time.Hour,
	)
	h := NewSecurityHandler(svc, captcha.NewVerifier(captchaConf))
	r := testutil.Router()
	r.POST("/auth/verify-captcha", h.VerifyCaptcha)
	h.Register(&r.RouterGroup)
	return r
}

func call(t *testing.T, r http.Handler, method string, path string, user string, token string, ua string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(testutil.UserHeader, user)
	if token != "" {
		req.Header.Set(jwt.SessionHeader, token)
	}
	req.Header.Set("User-Agent", ua)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessions(t *testing.T, r http.Handler, user string, token string) []entity.UserSession {
	t.Helper()
	w := call(t, r, http.MethodGet, "/security/sessions", user, token, chromeUA)
	var out []entity.UserSession
	testutil.Decode(t, w, &out)
	return out
}

func TestSessionLifecycle(t *testing.T) {
	r := newSecurityRouter(t, config.CaptchaConfig{})

	for _, tc := range []struct{ token, ua string }{{"tok-a", chromeUA}, {"tok-b", iphoneUA}, {"tok-c", firefoxUA}} {
		if w := call(t, r, http.MethodPost, "/security/sign-in", "alice", tc.token, tc.ua); w.Code != http.StatusOK {
			t.Fatalf("sign-in %s: got=%d body=%s", tc.token, w.Code, w.Body.String())
		}
	}
	// 重复登录同一令牌不产生新行
	call(t, r, http.MethodPost, "/security/sign-in", "alice", "tok-a", chromeUA)

	list := sessions(t, r, "alice", "tok-a")
	if len(list) != 3 {
		t.Fatalf("sessions: got=%d want=3", len(list))
	}
	var own, mobile string
	for _, s := range list {
		if s.IsCurrent {
			own = s.Id
		}
		if s.DeviceType == "mobile" {
			mobile = s.Id
		}
	}
	if own == "" || mobile == "" {
		t.Fatalf("expected current and mobile sessions: %+v", list)
	}

	w := call(t, r, http.MethodDelete, "/security/sessions/"+own, "alice", "tok-a", chromeUA)
	if w.Code != http.StatusConflict {
		t.Fatalf("terminate own: got=%d want=%d", w.Code, http.StatusConflict)
	}
	w = call(t, r, http.MethodDelete, "/security/sessions/"+mobile, "bob", "tok-x", chromeUA)
	if w.Code != http.StatusNotFound {
		t.Fatalf("terminate cross-user: got=%d want=%d", w.Code, http.StatusNotFound)
	}
	w = call(t, r, http.MethodDelete, "/security/sessions/"+mobile, "alice", "tok-a", chromeUA)
	if w.Code != http.StatusOK {
		t.Fatalf("terminate other: got=%d body=%s", w.Code, w.Body.String())
	}
	if got := len(sessions(t, r, "alice", "tok-a")); got != 2 {
		t.Fatalf("after terminate: got=%d want=2", got)
	}

	w = call(t, r, http.MethodGet, "/security/activity", "alice", "tok-a", chromeUA)
	var logs []entity.SecurityActivityLog
	testutil.Decode(t, w, &logs)
	if len(logs) != 5 {
		t.Fatalf("activity: got=%d want=5", len(logs))
	}
	if logs[0].ActivityType != entity.ActivitySessionTerminated {
		t.Fatalf("latest activity: got=%s want=%s", logs[0].ActivityType, entity.ActivitySessionTerminated)
	}
}

func TestSessionListSelfHealsOnlyOwnToken(t *testing.T) {
	r := newSecurityRouter(t, config.CaptchaConfig{})

	if got := len(sessions(t, r, "alice", "")); got != 0 {
		t.Fatalf("no token: got=%d want=0", got)
	}
	list := sessions(t, r, "alice", "tok-new")
	if len(list) != 1 || !list[0].IsCurrent || list[0].Browser != "Chrome" {
		t.Fatalf("self-heal: got=%+v", list)
	}
	if got := len(sessions(t, r, "bob", "")); got != 0 {
		t.Fatalf("bob: got=%d want=0", got)
	}
}

func TestSettingsClampTimeout(t *testing.T) {
	r := newSecurityRouter(t, config.CaptchaConfig{})

	w := testutil.Do(t, r, http.MethodGet, "/security/settings", "alice", nil)
	var s entity.SecuritySettings
	testutil.Decode(t, w, &s)
	if s.SessionTimeoutMinutes != 60 || !s.LoginNotifications {
		t.Fatalf("defaults: got=%+v", s)
	}

	w = testutil.Do(t, r, http.MethodPut, "/security/settings", "alice", map[string]any{"session_timeout_minutes": 1, "two_factor_enabled": true})
	testutil.Decode(t, w, &s)
	if s.SessionTimeoutMinutes != 5 || !s.TwoFactorEnabled || !s.LoginNotifications {
		t.Fatalf("update: got=%+v", s)
	}
}

func TestVerifyCaptchaEndpoint(t *testing.T) {
	r := newSecurityRouter(t, config.CaptchaConfig{})
	w := testutil.Do(t, r, http.MethodPost, "/auth/verify-captcha", "", map[string]any{"token": "abc"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unconfigured: got=%d want=%d", w.Code, http.StatusServiceUnavailable)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(captcha.Result{Success: true})
	}))
	defer srv.Close()
	r = newSecurityRouter(t, config.CaptchaConfig{SecretKey: "k", VerifyURL: srv.URL})
	w = testutil.Do(t, r, http.MethodPost, "/auth/verify-captcha", "", map[string]any{"token": "abc"})
	if w.Code != http.StatusOK {
		t.Fatalf("configured: got=%d body=%s", w.Code, w.Body.String())
	}
}
