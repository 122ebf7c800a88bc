// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// report.go stores generated reports in Valkey so repeated requests within
// the same hour skip the provider call, across restarts and instances.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"weeklyreport/internal/models"
)

const (
	// reportKeyPrefix is the Valkey key prefix for cached reports.
	reportKeyPrefix = "report:"

	// DefaultTTL is how long a generated report stays cached.
	DefaultTTL = time.Hour
)

// ReportCache manages report caching in Valkey. Backend faults are logged
// and read as misses.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a report cache backed by the given Valkey client.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ReportCache{client: client, ttl: ttl}
}

// Get retrieves a cached report.
func (rc *ReportCache) Get(ctx context.Context, key string) (*models.Report, bool) {
	val, err := rc.client.Get(ctx, reportKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("report cache get error", "key", key, "error", err)
		return nil, false
	}

	var r models.Report
	if err := json.Unmarshal(val, &r); err != nil {
		slog.Warn("report cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("report cache hit", "key", key)
	return &r, true
}

// Set stores a report with the configured TTL.
func (rc *ReportCache) Set(ctx context.Context, key string, r *models.Report) {
	data, err := json.Marshal(r)
	if err != nil {
		slog.Warn("report cache encode error", "key", key, "error", err)
		return
	}
	if err := rc.client.Set(ctx, reportKeyPrefix+key, data, rc.ttl).Err(); err != nil {
		slog.Warn("report cache set error", "key", key, "error", err)
	}
}

// Clear removes all cached reports by scanning for the prefix.
func (rc *ReportCache) Clear(ctx context.Context) error {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, reportKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("report cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("report cache delete: %w", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	slog.Info("report cache cleared", "deleted", deleted)
	return nil
}
