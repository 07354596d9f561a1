package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/booksapi/internal/infrastructure/config"
)

// NewClient 创建Redis客户端
// 1. 配置连接池参数(PoolSize、MinIdleConns)
// 2. 配置超时参数(DialTimeout、ReadTimeout、WriteTimeout)
// 3. 测试连接可用性
func NewClient(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Info("Redis连接成功", zap.String("addr", cfg.Addr()))
	return client, nil
}

// TokenStore 会话与Token黑名单
type TokenStore interface {
	SaveSession(ctx context.Context, accountID int64, data map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, accountID int64) error
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// NewTokenStore redis.enabled为false时返回NopStore
func NewTokenStore(cfg *config.Config, log *zap.Logger) (TokenStore, func(), error) {
	log = log.Named("redis")
	if !cfg.Redis.Enabled {
		log.Info("Redis未启用,Token注销与会话记录不生效")
		return NopStore{}, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()

	client, err := NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Error("关闭Redis连接失败", zap.Error(err))
		}
	}
	return NewSessionStore(client), cleanup, nil
}
