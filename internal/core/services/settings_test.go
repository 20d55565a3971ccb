package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
	assert.Equal(t, ":memory:", service.ConfigPath())
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.driver", "postgres")
	_ = store.Set("storage.postgres_dsn", "postgres://db")
	_ = store.Set("cache.redis_addr", "localhost:6379")
	_ = store.Set("cache.ttl_seconds", 60)
	_ = store.Set("server.addr", ":9000")
	_ = store.Set("server.max_upload_mb", 2)
	_ = store.Set("server.rate_per_second", 1.5)
	_ = store.Set("server.burst", 3)
	_ = store.Set("ingest.samples_dir", "/data/samples")
	_ = store.Set("reports.page_size", 20)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.StoragePostgres, settings.Storage.Driver)
	assert.Equal(t, "postgres://db", settings.Storage.PostgresDSN)
	assert.True(t, settings.Cache.Enabled())
	assert.Equal(t, 60, settings.Cache.TTLSeconds)
	assert.Equal(t, ":9000", settings.Server.Addr)
	assert.Equal(t, 2, settings.Server.MaxUploadMB)
	assert.Equal(t, 1.5, settings.Server.RatePerSecond)
	assert.Equal(t, 3, settings.Server.Burst)
	assert.Equal(t, "/data/samples", settings.Ingest.SamplesDir)
	assert.Equal(t, "./inbox", settings.Ingest.InboxDir)
	assert.Equal(t, 20, settings.Reports.PageSize)
	require.NoError(t, settings.Validate())
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("storage.driver", "mongodb")
	_ = store.Set("reports.page_size", -5)
	_ = store.Set("server.rate_per_second", 0.0)

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.StorageSQLite, settings.Storage.Driver)
	assert.Equal(t, domain.DefaultPageSize, settings.Reports.PageSize)
	assert.Equal(t, 5.0, settings.Server.RatePerSecond)
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("server.addr", ":7000"))
	require.NoError(t, service.Set("reports.page_size", "25"))
	require.NoError(t, service.Set("server.rate_per_second", "2.5"))
	require.NoError(t, service.Set("server.burst", 4))
	require.NoError(t, service.Set("storage.driver", "memory"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, ":7000", settings.Server.Addr)
	assert.Equal(t, 25, settings.Reports.PageSize)
	assert.Equal(t, 2.5, settings.Server.RatePerSecond)
	assert.Equal(t, 4, settings.Server.Burst)
	assert.Equal(t, domain.StorageMemory, settings.Storage.Driver)
}

func TestSettingsService_Set_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		name     string
		key      string
		value    any
		expected error
	}{
		{name: "unknown key", key: "search.mode", value: "x", expected: domain.ErrInvalidInput},
		{name: "non integer", key: "reports.page_size", value: "many", expected: domain.ErrInvalidInput},
		{name: "non number", key: "server.rate_per_second", value: "fast", expected: domain.ErrInvalidInput},
		{name: "wrong type for string", key: "server.addr", value: 5000, expected: domain.ErrInvalidInput},
		{name: "invalid driver", key: "storage.driver", value: "mongodb", expected: domain.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), tt.expected)
		})
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.True(t, sort.StringsAreSorted(keys))
	assert.Contains(t, keys, "storage.driver")
	assert.Contains(t, keys, "reports.page_size")
	assert.Len(t, keys, 13)
}
