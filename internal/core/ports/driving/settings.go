package driving

import "github.com/custodia-labs/bureau-cli/internal/core/domain"

// SettingsService resolves application settings.
// Precedence: defaults < config file < environment.
type SettingsService interface {
	// Get returns the effective settings.
	Get() (*domain.AppSettings, error)

	// Set persists a single config key to the config file.
	Set(key string, value any) error

	// ConfigPath returns the config file location.
	ConfigPath() string
}
