package services

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bureau-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageDriver     = "storage.driver"
	keyStorageDataDir    = "storage.data_dir"
	keyStoragePostgres   = "storage.postgres_dsn"
	keyCacheRedisAddr    = "cache.redis_addr"
	keyCacheTTL          = "cache.ttl_seconds"
	keyServerAddr        = "server.addr"
	keyServerUploadDir   = "server.upload_dir"
	keyServerMaxUploadMB = "server.max_upload_mb"
	keyServerRate        = "server.rate_per_second"
	keyServerBurst       = "server.burst"
	keyIngestSamplesDir  = "ingest.samples_dir"
	keyIngestInboxDir    = "ingest.inbox_dir"
	keyReportsPageSize   = "reports.page_size"
)

// keyKind describes how a config value is parsed from text.
type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
)

// knownKeys lists every settable key with its value kind.
var knownKeys = map[string]keyKind{
	keyStorageDriver:     kindString,
	keyStorageDataDir:    kindString,
	keyStoragePostgres:   kindString,
	keyCacheRedisAddr:    kindString,
	keyCacheTTL:          kindInt,
	keyServerAddr:        kindString,
	keyServerUploadDir:   kindString,
	keyServerMaxUploadMB: kindInt,
	keyServerRate:        kindFloat,
	keyServerBurst:       kindInt,
	keyIngestSamplesDir:  kindString,
	keyIngestInboxDir:    kindString,
	keyReportsPageSize:   kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Unset or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Driver:      s.getDriver(defaults.Storage.Driver),
			DataDir:     s.configStore.GetString(keyStorageDataDir), // Empty means the home directory
			PostgresDSN: s.configStore.GetString(keyStoragePostgres),
		},
		Cache: domain.CacheSettings{
			RedisAddr:  s.configStore.GetString(keyCacheRedisAddr),
			TTLSeconds: s.getInt(keyCacheTTL, defaults.Cache.TTLSeconds),
		},
		Server: domain.ServerSettings{
			Addr:          s.getString(keyServerAddr, defaults.Server.Addr),
			UploadDir:     s.configStore.GetString(keyServerUploadDir),
			MaxUploadMB:   s.getInt(keyServerMaxUploadMB, defaults.Server.MaxUploadMB),
			RatePerSecond: s.getFloat(keyServerRate, defaults.Server.RatePerSecond),
			Burst:         s.getInt(keyServerBurst, defaults.Server.Burst),
		},
		Ingest: domain.IngestSettings{
			SamplesDir: s.getString(keyIngestSamplesDir, defaults.Ingest.SamplesDir),
			InboxDir:   s.getString(keyIngestInboxDir, defaults.Ingest.InboxDir),
		},
		Reports: domain.ReportSettings{
			PageSize: s.getInt(keyReportsPageSize, defaults.Reports.PageSize),
		},
	}

	return settings, nil
}

// Set persists a single setting. String values are parsed for numeric keys.
func (s *SettingsService) Set(key string, value any) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	parsed, err := parseValue(kind, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	if key == keyStorageDriver {
		if driver := domain.StorageDriver(fmt.Sprint(parsed)); !driver.IsValid() {
			return fmt.Errorf("invalid storage driver %q: %w", driver, domain.ErrUnsupportedType)
		}
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// ConfigPath returns the configuration file location.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// Keys returns every settable key in sorted order.
func Keys() []string {
	return slices.Sorted(maps.Keys(knownKeys))
}

func parseValue(kind keyKind, value any) (any, error) {
	text, isText := value.(string)
	switch kind {
	case kindInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		}
		if isText {
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("%q is not an integer: %w", text, domain.ErrInvalidInput)
			}
			return n, nil
		}
	case kindFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
		if isText {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not a number: %w", text, domain.ErrInvalidInput)
			}
			return f, nil
		}
	case kindString:
		if isText {
			return text, nil
		}
	}
	return nil, fmt.Errorf("unexpected value %v: %w", value, domain.ErrInvalidInput)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDriver(defaultVal domain.StorageDriver) domain.StorageDriver {
	val := s.configStore.GetString(keyStorageDriver)
	if val == "" {
		return defaultVal
	}
	driver := domain.StorageDriver(val)
	if !driver.IsValid() {
		return defaultVal
	}
	return driver
}
