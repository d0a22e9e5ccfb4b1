package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	https_server "EDT/api/http"
	"EDT/internal/config"
	"EDT/internal/initial"
	"EDT/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to the toml config file")
	flag.Parse()

	// 1. 加载配置
	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	zlog.Init(conf.LogConfig.LogPath, conf.LogConfig.Level)
	defer func() { _ = zlog.Sync() }()
	if conf.MainConfig.Mode != "" {
		gin.SetMode(conf.MainConfig.Mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. 初始化依赖
	shutdownTracing := initial.InitTracing(ctx, conf.ObservabilityConfig, conf.MainConfig.AppName)
	app, err := initial.NewApp(ctx, conf)
	if err != nil {
		zlog.Fatal("初始化失败", zap.Error(err))
	}

	// 3. 启动 HTTP 服务
	addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           https_server.NewEngine(app),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zlog.Info("服务器正在启动", zap.String("addr", addr), zap.String("ai_mode", app.AIMode()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 4. 优雅关闭
	<-ctx.Done()
	zlog.Info("正在关闭服务器...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("HTTP 服务关闭失败", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zlog.Warn("链路追踪关闭失败", zap.Error(err))
	}
	if err := app.Close(); err != nil {
		zlog.Warn("释放资源失败", zap.Error(err))
	}
	zlog.Info("服务器已关闭")
}
