// Package redis provides a read-through Redis cache in front of a driven.ReportStore.
//
// Reports are cached by ID and by PAN as their JSON encoding. Writes go to
// the wrapped store first and then invalidate the affected keys. Listings
// are never cached. Redis failures are logged and fall back to the store,
// so an unavailable cache only costs latency.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bureau-cli/internal/logger"
)

// Ensure ReportCache implements the interface.
var _ driven.ReportStore = (*ReportCache)(nil)

// KeyPrefix namespaces every key written by the cache.
const KeyPrefix = "bureau:report:"

// DefaultTTL is used when a non-positive TTL is configured.
const DefaultTTL = 5 * time.Minute

// ReportCache decorates a ReportStore with Redis caching.
type ReportCache struct {
	client goredis.UniversalClient
	store  driven.ReportStore
	ttl    time.Duration
}

// NewReportCache wraps store with a cache backed by client.
func NewReportCache(client goredis.UniversalClient, store driven.ReportStore, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ReportCache{
		client: client,
		store:  store,
		ttl:    ttl,
	}
}

// NewClient creates a Redis client for addr.
func NewClient(addr string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
	})
}

// Ping checks the Redis connection.
func (c *ReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *ReportCache) Close() error {
	return c.client.Close()
}

// Save stores the report and invalidates its cached entries.
func (c *ReportCache) Save(ctx context.Context, report *domain.Report) error {
	if err := c.store.Save(ctx, report); err != nil {
		return err
	}
	c.invalidate(ctx, idKey(report.ID), panKey(report.BasicDetails.PAN))
	return nil
}

// Get returns the cached report or loads it from the store.
func (c *ReportCache) Get(ctx context.Context, id string) (*domain.Report, error) {
	return c.readThrough(ctx, idKey(id), func() (*domain.Report, error) {
		return c.store.Get(ctx, id)
	})
}

// GetByPAN returns the cached report for a PAN or loads it from the store.
func (c *ReportCache) GetByPAN(ctx context.Context, pan string) (*domain.Report, error) {
	return c.readThrough(ctx, panKey(pan), func() (*domain.Report, error) {
		return c.store.GetByPAN(ctx, pan)
	})
}

// List delegates to the store.
func (c *ReportCache) List(ctx context.Context, opts domain.ListOptions) ([]domain.ReportListing, error) {
	return c.store.List(ctx, opts)
}

// Delete removes the report and its cached entries.
func (c *ReportCache) Delete(ctx context.Context, id string) error {
	keys := []string{idKey(id)}
	if existing, err := c.store.Get(ctx, id); err == nil {
		keys = append(keys, panKey(existing.BasicDetails.PAN))
	}

	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, keys...)
	return nil
}

// DeleteAll removes every report and every cached entry.
func (c *ReportCache) DeleteAll(ctx context.Context) error {
	if err := c.store.DeleteAll(ctx); err != nil {
		return err
	}

	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("scanning cached reports: %v", err)
		return nil
	}
	c.invalidate(ctx, keys...)
	return nil
}

func (c *ReportCache) readThrough(ctx context.Context, key string, load func() (*domain.Report, error)) (*domain.Report, error) {
	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var report domain.Report
		if err := json.Unmarshal(cached, &report); err == nil {
			logger.Debug("cache hit %s", key)
			return &report, nil
		}
		logger.Warn("discarding unreadable cache entry %s", key)
	case errors.Is(err, goredis.Nil):
		logger.Debug("cache miss %s", key)
	default:
		logger.Warn("reading cache %s: %v", key, err)
	}

	report, err := load()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshalling report: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn("writing cache %s: %v", key, err)
	}
	return report, nil
}

func (c *ReportCache) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("invalidating cache: %v", err)
	}
}

func idKey(id string) string {
	return KeyPrefix + "id:" + id
}

func panKey(pan string) string {
	return KeyPrefix + "pan:" + pan
}
