package storage

import (
	"context"

	"github.com/plsfundme/portal/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedis connects to redis. An unreachable server is logged, not fatal;
// session reads fail until it comes back.
func NewRedis(cfg config.Redis, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn("unable to reach redis", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		log.Info("connected to redis", zap.String("addr", cfg.Addr))
	}

	return client
}
