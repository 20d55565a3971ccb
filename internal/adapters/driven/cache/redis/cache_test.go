package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient() *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "bureau:report:id:abc", idKey("abc"))
	assert.Equal(t, "bureau:report:pan:ABCDE1234F", panKey("ABCDE1234F"))
}

func TestNewReportCache_DefaultTTL(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	cache := NewReportCache(client, memory.NewReportStore(), 0)
	assert.Equal(t, DefaultTTL, cache.ttl)

	cache = NewReportCache(client, memory.NewReportStore(), time.Minute)
	assert.Equal(t, time.Minute, cache.ttl)
}

func TestReportCache_FallsBackWhenRedisIsDown(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	ctx := context.Background()
	store := memory.NewReportStore()
	cache := NewReportCache(client, store, time.Minute)

	assert.Error(t, cache.Ping(ctx))

	report := &domain.Report{BasicDetails: domain.BasicDetails{Name: "Cached", PAN: "PAN0000001"}}
	require.NoError(t, cache.Save(ctx, report))
	require.NotEmpty(t, report.ID)

	got, err := cache.Get(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.BasicDetails.Name)

	got, err = cache.GetByPAN(ctx, "PAN0000001")
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)

	listings, err := cache.List(ctx, domain.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listings, 1)

	require.NoError(t, cache.Delete(ctx, report.ID))
	_, err = cache.Get(ctx, report.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, cache.Save(ctx, &domain.Report{}))
	require.NoError(t, cache.DeleteAll(ctx))
	listings, err = cache.List(ctx, domain.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestReportCache_PropagatesStoreErrors(t *testing.T) {
	client := unreachableClient()
	defer client.Close()

	cache := NewReportCache(client, memory.NewReportStore(), time.Minute)

	_, err := cache.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, cache.Delete(context.Background(), "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, cache.Save(context.Background(), nil), domain.ErrInvalidInput)
}

// TestReportCache_Integration runs against a live Redis when
// BUREAU_TEST_REDIS_ADDR is set.
func TestReportCache_Integration(t *testing.T) {
	addr := os.Getenv("BUREAU_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BUREAU_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := NewClient(addr)
	store := memory.NewReportStore()
	cache := NewReportCache(client, store, time.Minute)
	defer cache.Close()

	require.NoError(t, cache.Ping(ctx))
	require.NoError(t, cache.DeleteAll(ctx))

	report := &domain.Report{BasicDetails: domain.BasicDetails{Name: "Original", PAN: "PANREDIS01"}}
	require.NoError(t, cache.Save(ctx, report))

	_, err := cache.Get(ctx, report.ID)
	require.NoError(t, err)

	// Bypass the cache: the cached copy is served until invalidated.
	changed := *report
	changed.BasicDetails.Name = "Changed"
	require.NoError(t, store.Save(ctx, &changed))

	got, err := cache.Get(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.BasicDetails.Name)

	require.NoError(t, cache.Save(ctx, &changed))
	got, err = cache.Get(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", got.BasicDetails.Name)

	exists, err := client.Exists(ctx, idKey(report.ID)).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	require.NoError(t, cache.Delete(ctx, report.ID))
	exists, err = client.Exists(ctx, idKey(report.ID), panKey("PANREDIS01")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}
