package pipeline

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"EDT/internal/modules/ai/infrastructure/llm"
	"EDT/internal/modules/ai/infrastructure/plugins"
	"EDT/internal/modules/ai/infrastructure/structured"
	"EDT/pkg/xerr"
	"EDT/pkg/zlog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// 结果来源
const (
	ModeAI   = "ai"
	ModeDemo = "demo"
)

const formatInstruction = "Respond with ONLY a single JSON object, no prose and no Markdown, using exactly these fields:\n"

// Cache 归一化结果缓存（Redis）；为 nil 时不缓存
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Result 归一化后的结构化结果
type Result struct {
	Data structured.Object
	Mode string
}

// Engine 结构化生成的统一流程
//
// 流程：
// 1. 按名称路由到插件
// 2. 校验必填事实
// 3. 模型未配置：兜底或报错（由插件决定）
// 4. 组装 prompt，查缓存
// 5. 调用模型（一次）
// 6. 去围栏、解析、按 schema 归一化
// 7. 失败时兜底或返回 ResponseFormatError / UpstreamError
// 8. 写缓存
type Engine struct {
	gen     llm.Generator
	cache   Cache
	ttl     time.Duration
	plugins map[string]plugins.Plugin
}

// NewEngine gen 为 nil 表示未配置模型凭证；cache 可为 nil
func NewEngine(gen llm.Generator, cache Cache, ttl time.Duration) *Engine {
	e := &Engine{
		gen:     gen,
		cache:   cache,
		ttl:     ttl,
		plugins: make(map[string]plugins.Plugin),
	}
	for _, p := range plugins.Defaults() {
		e.RegisterPlugin(p)
	}
	return e
}

// RegisterPlugin 注册或覆盖同名插件
func (e *Engine) RegisterPlugin(p plugins.Plugin) {
	e.plugins[p.Name()] = p
}

// Configured 是否配置了模型
func (e *Engine) Configured() bool {
	return e.gen != nil
}

func (e *Engine) Execute(ctx context.Context, name string, facts plugins.Facts) (*Result, error) {
	p, ok := e.plugins[name]
	if !ok {
		return nil, xerr.Internal(fmt.Errorf("unknown plugin %q", name))
	}

	for _, key := range p.Required() {
		if !facts.Present(key) {
			return nil, xerr.Validation(key + " is required")
		}
	}

	if e.gen == nil {
		return e.fallback(p, facts, func() error {
			if u, ok := p.(plugins.UnconfiguredPlugin); ok {
				return u.UnconfiguredError()
			}
			return xerr.ServiceUnavailable("AI generation is not configured")
		})
	}

	prompt := p.BuildPrompt(facts) + "\n" + formatInstruction + p.Schema().Describe()
	key := cacheKey(name, prompt)
	if data, ok := e.fromCache(ctx, p, key); ok {
		return &Result{Data: data, Mode: ModeAI}, nil
	}

	ctx, span := otel.Tracer("EDT/ai").Start(ctx, "structured."+name)
	defer span.End()
	start := time.Now()

	raw, err := e.gen.Generate(ctx, prompt, p.Params())
	span.SetAttributes(attribute.Int64("ai.latency_ms", time.Since(start).Milliseconds()))
	if err != nil {
		cause := llm.ClassifyError(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(cause))
		zlog.Warn("model call failed", zap.String("plugin", name), zap.String("cause", string(cause)), zap.Error(err))
		return e.fallback(p, facts, func() error { return xerr.Upstream(cause, err) })
	}

	data, err := decode(p, raw)
	if err != nil {
		span.SetStatus(codes.Error, "response format")
		zlog.Warn("model output rejected", zap.String("plugin", name), zap.Error(err), zap.Int("raw_len", len(raw)))
		return e.fallback(p, facts, func() error { return xerr.ResponseFormat("The AI response could not be understood. Please rephrase and try again.") })
	}

	e.toCache(ctx, key, data)
	zlog.Info("structured generation done", zap.String("plugin", name), zap.Duration("latency", time.Since(start)))
	return &Result{Data: data, Mode: ModeAI}, nil
}

// fallback 插件有兜底就用兜底，否则返回 failure 给出的错误
func (e *Engine) fallback(p plugins.Plugin, facts plugins.Facts, failure func() error) (*Result, error) {
	fp, ok := p.(plugins.FallbackPlugin)
	if !ok {
		return nil, failure()
	}
	data, err := p.Schema().Normalize(fp.Fallback(facts))
	if err != nil {
		return nil, xerr.Internal(fmt.Errorf("fallback for %s: %w", p.Name(), err))
	}
	return &Result{Data: data, Mode: ModeDemo}, nil
}

func decode(p plugins.Plugin, raw string) (structured.Object, error) {
	obj, err := structured.ParseObject(raw)
	if err != nil {
		return nil, err
	}
	return p.Schema().Normalize(obj)
}

func (e *Engine) fromCache(ctx context.Context, p plugins.Plugin, key string) (structured.Object, bool) {
	if e.cache == nil || e.ttl <= 0 {
		return nil, false
	}
	val, err := e.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	data, err := decode(p, val)
	if err != nil {
		zlog.Warn("discard cached result", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, true
}

func (e *Engine) toCache(ctx context.Context, key string, data structured.Object) {
	if e.cache == nil || e.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(data)
	if err == nil {
		err = e.cache.Set(ctx, key, string(raw), e.ttl)
	}
	if err != nil {
		zlog.Warn("cache structured result failed", zap.String("key", key), zap.Error(err))
	}
}

func cacheKey(name string, prompt string) string {
	hash := md5.Sum([]byte(prompt))
	return fmt.Sprintf("ai:structured:%s:%s", name, hex.EncodeToString(hash[:]))
}
