package trace

import (
	"strings"
	"time"

	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	HeaderTraceID   = "X-Trace-Id"
	HeaderRequestID = "X-Request-Id"
)

// RequestContext 为每个请求分配 request_id / trace_id，写回响应头并记录访问日志
//
// 需要挂在 otelgin 之后，才能取到当前 span 的 trace id
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if reqID == "" {
			reqID = uuid.New().String()
		}
		traceID := ""
		if sc := oteltrace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		}
		if traceID == "" {
			traceID = reqID
		}
		c.Set("request_id", reqID)
		c.Set("trace_id", traceID)
		c.Writer.Header().Set(HeaderRequestID, reqID)
		c.Writer.Header().Set(HeaderTraceID, traceID)

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", reqID),
			zap.String("trace_id", traceID),
		}
		if uid := c.GetString("uuid"); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		switch {
		case status >= 500:
			zlog.Error("HTTP request", fields...)
		case status >= 400:
			zlog.Warn("HTTP request", fields...)
		default:
			zlog.Info("HTTP request", fields...)
		}
	}
}
