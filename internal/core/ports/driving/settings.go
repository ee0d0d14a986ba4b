package driving

import "github.com/custodia-labs/seek/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetValue validates and stores a single setting by key.
	SetValue(key, value string) error

	// Value returns the effective value of a single setting as a string.
	Value(key string) (string, error)

	// Keys returns every supported setting key in display order.
	Keys() []string

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Path returns the configuration file path.
	Path() string
}
