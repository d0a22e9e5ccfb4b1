package trace

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestContext())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})
	return r
}

func TestRequestContext_KeepsIncomingRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "req-42" {
		t.Fatalf("request id header: got=%q want=%q", got, "req-42")
	}
	if w.Body.String() != "req-42" {
		t.Fatalf("context request id: got=%q want=%q", w.Body.String(), "req-42")
	}
	// 没有活动 span 时 trace id 退化为 request id
	if got := w.Header().Get(HeaderTraceID); got != "req-42" {
		t.Fatalf("trace id header: got=%q want=%q", got, "req-42")
	}
}

func TestRequestContext_GeneratesRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if got := w.Header().Get(HeaderRequestID); len(got) != 36 {
		t.Fatalf("generated request id: got=%q", got)
	}
}
