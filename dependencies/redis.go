package dependencies

import (
	"context"
	"fmt"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
)

// InitRedis 创建 Redis 客户端并 Ping 一次。Addr 为空时返回 nil, nil，调用方据此关闭排行榜功能。
func InitRedis(cfg *config.RedisConfig, logger *core.ZapLogger) (*redis.Client, error) {
	if cfg.Addr == "" {
		logger.Warn("未配置 Redis 地址，阅读排行榜功能将回退到数据库")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  seconds(cfg.DialTimeout),
		ReadTimeout:  seconds(cfg.ReadTimeout),
		WriteTimeout: seconds(cfg.WriteTimeout),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Redis Ping 失败", zap.String("addr", cfg.Addr), zap.Error(err))
		_ = client.Close()
		return nil, fmt.Errorf("连接 Redis '%s' 失败: %w", cfg.Addr, err)
	}
	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return client, nil
}

// seconds 0 表示使用 go-redis 默认值
func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
