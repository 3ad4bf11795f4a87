package cache

import (
	"context"
	"fmt"
	"time"

	"health-connect-api/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// NewRedisClient connects to the token cache. The client is closed again if
// the server does not answer a ping within pingTimeout.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     Addr(cfg),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", Addr(cfg), err)
	}

	logrus.WithFields(logrus.Fields{
		"addr": Addr(cfg),
		"db":   cfg.DB,
	}).Info("Token cache connected")

	return client, nil
}

// Addr returns the host:port of the configured server.
func Addr(cfg config.RedisConfig) string {
	return fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
}
