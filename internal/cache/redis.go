package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"edutech/internal/logger"
)

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects to Redis. An unreachable server is logged, not
// fatal; cache calls degrade to misses until it comes back.
func NewRedisClient(ctx context.Context, cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Get().Warnw("unable to reach redis", "addr", cfg.Addr, "error", err)
	} else {
		logger.Get().Infow("connected to redis", "addr", cfg.Addr)
	}
	return client
}
