package initial

import (
	"context"
	"fmt"
	"time"

	"EDT/internal/config"
	"EDT/pkg/redis"
	"EDT/pkg/zlog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisCache 连接 Redis；未配置或连接失败时返回 nil，AI 结果缓存随之关闭
func NewRedisCache(ctx context.Context, conf config.RedisConfig) *redis.Cache {
	host := conf.Host
	port := conf.Port

	// 如果未配置主机，则跳过 Redis 初始化
	if host == "" {
		zlog.Info("Redis 未配置，跳过初始化")
		return nil
	}

	if port == 0 {
		port = 6379
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	zlog.Info("Redis connecting", zap.String("addr", addr))

	client := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     conf.Password,
		DB:           conf.DB,
		PoolSize:     conf.PoolSize,
		MinIdleConns: conf.MinIdleConns,
	})

	// 测试连接
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		zlog.Error("Redis 连接失败", zap.Error(err))
		_ = client.Close()
		return nil
	}

	zlog.Info("Redis 连接成功")
	return redis.NewCache(client, "edt:")
}
