package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bureau-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bureau-cli/internal/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"BUREAU_STORAGE_DRIVER", "BUREAU_DATA_DIR", "DATABASE_URL", "REDIS_ADDR", "PORT"} {
		t.Setenv(name, "")
	}
}

func TestOpenStore_Memory(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Storage.Driver = domain.StorageMemory

	store, closeFn, err := openStore(&settings)
	require.NoError(t, err)
	assert.IsType(t, &memory.ReportStore{}, store)
	assert.NoError(t, closeFn())
}

func TestOpenStore_SQLite(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Storage.DataDir = t.TempDir()

	store, closeFn, err := openStore(&settings)
	require.NoError(t, err)
	defer closeFn()

	report := &domain.Report{BasicDetails: domain.BasicDetails{Name: "Wired"}}
	require.NoError(t, store.Save(context.Background(), report))

	got, err := store.Get(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wired", got.BasicDetails.Name)
}

func TestOpenStore_PostgresRequiresDSN(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Storage.Driver = domain.StoragePostgres

	_, _, err := openStore(&settings)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Storage.Driver = "mongo"

	_, _, err := openStore(&settings)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestWithCache_Disabled(t *testing.T) {
	store := memory.NewReportStore()
	got, closeFn := withCache(store, domain.CacheSettings{})
	assert.Same(t, store, got)
	assert.NoError(t, closeFn())
}

func TestWithCache_UnreachableFallsBack(t *testing.T) {
	store := memory.NewReportStore()
	got, closeFn := withCache(store, domain.CacheSettings{RedisAddr: "127.0.0.1:1", TTLSeconds: 1})
	assert.Same(t, store, got)
	assert.NoError(t, closeFn())
}

func TestBootstrap_MemoryDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("BUREAU_STORAGE_DRIVER", "memory")

	svc, err := bootstrap(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, svc.Ingest)
	require.NotNil(t, svc.Reports)
	require.NotNil(t, svc.Settings)
	defer svc.Close()

	report, err := svc.Ingest.Ingest(context.Background(), domain.Upload{
		Name:    "r.xml",
		Content: []byte(`<ExperianReport><CreditScore>640</CreditScore></ExperianReport>`),
	})
	require.NoError(t, err)

	got, err := svc.Reports.Get(context.Background(), report.ID)
	require.NoError(t, err)
	assert.Equal(t, 640.0, got.BasicDetails.CreditScore)
}
