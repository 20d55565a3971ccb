package domain

const unknownDescription = "Unknown"

// StorageDriver selects the ReportStore backend.
type StorageDriver string

// Available storage drivers.
const (
	// StorageSQLite is the embedded, file-backed store (default).
	StorageSQLite StorageDriver = "sqlite"

	// StoragePostgres is a PostgreSQL server reached through GORM.
	StoragePostgres StorageDriver = "postgres"

	// StorageMemory keeps reports in process memory only.
	StorageMemory StorageDriver = "memory"
)

// IsValid returns true if the storage driver is recognised.
func (d StorageDriver) IsValid() bool {
	switch d {
	case StorageSQLite, StoragePostgres, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d StorageDriver) String() string {
	return string(d)
}

// Description returns a human-readable description of the driver.
func (d StorageDriver) Description() string {
	switch d {
	case StorageSQLite:
		return "SQLite (embedded file)"
	case StoragePostgres:
		return "PostgreSQL"
	case StorageMemory:
		return "In-memory (not persisted)"
	default:
		return unknownDescription
	}
}

// StorageSettings configures report persistence.
type StorageSettings struct {
	// Driver selects the backend.
	Driver StorageDriver

	// DataDir is where the SQLite database lives. Empty means ~/.bureau/data.
	DataDir string

	// PostgresDSN is the connection string for the postgres driver.
	PostgresDSN string
}

// CacheSettings configures the optional Redis read-through cache.
type CacheSettings struct {
	// RedisAddr is host:port of the Redis server. Empty disables caching.
	RedisAddr string

	// TTLSeconds is how long cached reports live.
	TTLSeconds int
}

// Enabled returns true if a cache backend is configured.
func (c CacheSettings) Enabled() bool {
	return c.RedisAddr != ""
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string

	// UploadDir holds temporary upload files. Empty means the OS temp dir.
	UploadDir string

	// MaxUploadMB caps the multipart body size.
	MaxUploadMB int

	// RatePerSecond and Burst configure the upload rate limiter.
	RatePerSecond float64
	Burst         int
}

// IngestSettings configures batch loading.
type IngestSettings struct {
	// SamplesDir is the default directory for `seed`.
	SamplesDir string

	// InboxDir is the default directory for `watch`.
	InboxDir string
}

// ReportSettings configures report queries.
type ReportSettings struct {
	// PageSize is the default listing size.
	PageSize int
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Storage StorageSettings
	Cache   CacheSettings
	Server  ServerSettings
	Ingest  IngestSettings
	Reports ReportSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Driver: StorageSQLite,
		},
		Cache: CacheSettings{
			TTLSeconds: 300,
		},
		Server: ServerSettings{
			Addr:          ":5000",
			MaxUploadMB:   10,
			RatePerSecond: 5,
			Burst:         10,
		},
		Ingest: IngestSettings{
			SamplesDir: "./samples",
			InboxDir:   "./inbox",
		},
		Reports: ReportSettings{
			PageSize: DefaultPageSize,
		},
	}
}

// Validate checks settings for consistency.
func (s *AppSettings) Validate() error {
	if !s.Storage.Driver.IsValid() {
		return ErrUnsupportedType
	}
	if s.Storage.Driver == StoragePostgres && s.Storage.PostgresDSN == "" {
		return ErrInvalidInput
	}
	if s.Server.MaxUploadMB <= 0 || s.Reports.PageSize <= 0 {
		return ErrInvalidInput
	}
	return nil
}
