package initial

import (
	"context"
	"errors"
	"time"

	"EDT/internal/config"
	"EDT/internal/modules/ai/infrastructure/llm"
	"EDT/pkg/redis"
	"EDT/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConnectionState 外部依赖的连接状态
type ConnectionState string

const (
	StateConnected    ConnectionState = "connected"
	StateDisconnected ConnectionState = "disconnected"
	StateUnknown      ConnectionState = "unknown"
)

// App 进程级依赖集合，由 main 创建后显式传给路由层
type App struct {
	Conf     *config.Config
	DB       *gorm.DB
	DemoData bool
	Cache    *redis.Cache
	// Generator 为 nil 表示未配置模型凭证
	Generator llm.Generator
	ModelMeta llm.ChatModelMeta
}

// NewApp 初始化数据库、缓存与模型；只有数据库失败是致命的
func NewApp(ctx context.Context, conf *config.Config) (*App, error) {
	db, demo, err := NewGormDB(conf.DatabaseConfig)
	if err != nil {
		return nil, err
	}

	app := &App{Conf: conf, DB: db, DemoData: demo}
	app.Cache = NewRedisCache(ctx, conf.RedisConfig)

	gen, meta, err := llm.NewGeneratorFromConfig(ctx, conf.AIConfig.ChatModel)
	if err != nil {
		zlog.Warn("AI 模型未就绪，使用 demo 模式", zap.Error(err))
	} else {
		app.Generator = gen
		app.ModelMeta = meta
		zlog.Info("AI 模型已就绪", zap.String("provider", meta.Provider), zap.String("model", meta.Model))
	}
	return app, nil
}

// DatabaseState 探测数据库连通性
func (a *App) DatabaseState(ctx context.Context) ConnectionState {
	if a == nil || a.DB == nil {
		return StateUnknown
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return StateUnknown
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return StateDisconnected
	}
	return StateConnected
}

// CacheState 探测 Redis 连通性
func (a *App) CacheState(ctx context.Context) ConnectionState {
	if a == nil || a.Cache == nil {
		return StateDisconnected
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := a.Cache.Ping(pingCtx); err != nil {
		return StateDisconnected
	}
	return StateConnected
}

// AIMode live 表示已配置模型，demo 表示全部走本地兜底
func (a *App) AIMode() string {
	if a != nil && a.Generator != nil {
		return "live"
	}
	return "demo"
}

// Close 释放数据库与缓存连接
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
