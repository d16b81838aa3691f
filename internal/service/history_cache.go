package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"career-coach/internal/domain"
)

// HistoryCache guarda el listado de historial por usuario.
type HistoryCache interface {
	Get(ctx context.Context, userID string) ([]domain.HistorySummary, bool)
	Set(ctx context.Context, userID string, items []domain.HistorySummary)
	Invalidate(ctx context.Context, userID string)
}

type noopHistoryCache struct{}

func NewNoopHistoryCache() HistoryCache { return noopHistoryCache{} }

func (noopHistoryCache) Get(context.Context, string) ([]domain.HistorySummary, bool) {
	return nil, false
}

func (noopHistoryCache) Set(context.Context, string, []domain.HistorySummary) {}

func (noopHistoryCache) Invalidate(context.Context, string) {}

type redisCacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisHistoryCache struct {
	client redisCacheClient
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

// NewRedisHistoryCache usa Redis como cache; los errores de Redis se registran y se ignoran.
func NewRedisHistoryCache(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) HistoryCache {
	if client == nil {
		return NewNoopHistoryCache()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisHistoryCache{client: client, ttl: ttl, prefix: "history:list:", logger: logger}
}

func (c *redisHistoryCache) Get(ctx context.Context, userID string) ([]domain.HistorySummary, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+userID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("history cache get failed", zap.Error(err), zap.String("user_id", userID))
		}
		return nil, false
	}
	var items []domain.HistorySummary
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *redisHistoryCache) Set(ctx context.Context, userID string, items []domain.HistorySummary) {
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := c.client.Set(ctx, c.prefix+userID, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("history cache set failed", zap.Error(err), zap.String("user_id", userID))
	}
}

func (c *redisHistoryCache) Invalidate(ctx context.Context, userID string) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := c.client.Del(ctx, c.prefix+userID).Err(); err != nil {
		c.logger.Warn("history cache invalidate failed", zap.Error(err), zap.String("user_id", userID))
	}
}
