package driving

import "github.com/custodia-labs/stackprobe/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings with defaults and environment overrides applied.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// Set updates a single setting by its config key, e.g. "crawl.limit".
	Set(key, value string) error

	// SetAPIKey stores the crawl API key.
	SetAPIKey(key string) error

	// Keys lists the settable config keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Path returns where settings are stored.
	Path() string
}
