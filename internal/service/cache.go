package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kapu/hsr-banner-tracker-go/internal/config"
	"github.com/kapu/hsr-banner-tracker-go/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const payloadCacheKey = "hsr:wish:payload"

// PayloadCache is an optional Redis layer in front of the file store. A nil
// *PayloadCache is valid and behaves as a permanent miss, so callers never
// have to branch on whether Redis is configured.
type PayloadCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewPayloadCache(cfg config.RedisConfig, logger *zap.Logger) (*PayloadCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis payload cache connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Duration("ttl", cfg.TTL))

	return &PayloadCache{
		client: client,
		logger: logger,
		ttl:    cfg.TTL,
	}, nil
}

// Get returns the cached payload, or (nil, false) on miss or any Redis error.
// Cache failures degrade to the slower path, never to a request failure.
func (c *PayloadCache) Get(ctx context.Context) (*domain.ResultPayload, bool) {
	if c == nil {
		return nil, false
	}

	value, err := c.client.Get(ctx, payloadCacheKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Payload cache get failed", zap.Error(err))
		return nil, false
	}

	var payload domain.ResultPayload
	if err := json.Unmarshal([]byte(value), &payload); err != nil {
		c.logger.Warn("Payload cache unmarshal failed", zap.Error(err))
		return nil, false
	}

	return &payload, true
}

func (c *PayloadCache) Set(ctx context.Context, payload *domain.ResultPayload) {
	if c == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Warn("Payload cache marshal failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, payloadCacheKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Payload cache set failed", zap.Error(err))
	}
}

func (c *PayloadCache) Close() error {
	if c == nil {
		return nil
	}
	if err := c.client.Close(); err != nil {
		c.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	c.logger.Info("Redis disconnected")
	return nil
}
