package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/sitterbook/internal/platform/config"
)

// NewRedisClient returns nil when the quote cache is disabled.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log logrus.FieldLogger) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Info("redis disabled, quote cache off")
		return nil, nil
	}

	log.WithField("addr", cfg.Addr()).Info("connecting to redis")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("redis connected")
	return client, nil
}
