// Package cache keeps a short-lived copy of the resolved settings map in
// Redis so public reads do not hit Postgres on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/redis/go-redis/v9"
)

const settingsKey = "site-admin:settings:all"

// NewClient parses a redis:// URL. An empty URL means caching is disabled.
func NewClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// SettingsCache stores the resolved settings map under a single key. Errors
// are logged and treated as a miss.
type SettingsCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewSettingsCache(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *SettingsCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsCache{client: client, ttl: ttl, logger: logger}
}

func (c *SettingsCache) Get(ctx context.Context) (models.SettingsMap, bool) {
	data, err := c.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "settings cache get failed", "error", err)
		}
		return nil, false
	}

	var settings models.SettingsMap
	if err := json.Unmarshal(data, &settings); err != nil {
		c.logger.WarnContext(ctx, "settings cache entry is corrupt", "error", err)
		return nil, false
	}
	return settings, true
}

func (c *SettingsCache) Set(ctx context.Context, settings models.SettingsMap) {
	if c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, settingsKey, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "settings cache set failed", "error", err)
	}
}

func (c *SettingsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "settings cache invalidate failed", "error", err)
	}
}
