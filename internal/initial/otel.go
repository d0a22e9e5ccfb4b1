package initial

import (
	"context"
	"strings"
	"time"

	"EDT/internal/config"
	"EDT/pkg/zlog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// InitTracing 初始化全局 TracerProvider，返回关闭函数
//
// 未启用时返回空操作，otel 默认的 noop provider 继续生效
func InitTracing(ctx context.Context, conf config.ObservabilityConfig, appName string) func(context.Context) error {
	if !conf.Enabled {
		return func(context.Context) error { return nil }
	}
	name := strings.TrimSpace(conf.ServiceName)
	if name == "" {
		name = appName
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", name),
		attribute.String("service.component", "api"),
	)
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio(conf.SampleRatio)))),
		sdktrace.WithResource(res),
	}

	exporter, err := newTraceExporter(ctx, conf)
	if err != nil {
		zlog.Warn("trace exporter init failed, spans will not be exported", zap.Error(err))
	} else {
		opts = append(opts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	zlog.Info("链路追踪已启用", zap.String("service", name), zap.String("endpoint", conf.Endpoint))
	return tp.Shutdown
}

func newTraceExporter(ctx context.Context, conf config.ObservabilityConfig) (sdktrace.SpanExporter, error) {
	endpoint := strings.TrimSpace(conf.Endpoint)
	if endpoint == "" {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if conf.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

func sampleRatio(v float64) float64 {
	switch {
	case v <= 0:
		return 0.1
	case v > 1:
		return 1
	}
	return v
}
