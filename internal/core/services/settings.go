package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/seek/internal/core/domain"
	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyPageSize       = "search.page_size"
	keyScope          = "search.scope"
	keySort           = "search.sort"
	keyBaseURL        = "registry.base_url"
	keyUserAgent      = "registry.user_agent"
	keyRateLimitMS    = "registry.rate_limit_ms"
	keyTimeoutS       = "registry.timeout_s"
	keyCacheSize      = "registry.cache_size"
	keyHydrationDelay = "hydration.delay_ms"
	keyGitHubToken    = "github.token"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			PageSize: s.getInt(keyPageSize, defaults.Search.PageSize),
			Scope:    s.getScope(defaults.Search.Scope),
			Sort:     s.getSort(defaults.Search.Sort),
		},
		Registry: domain.RegistrySettings{
			BaseURL:           s.getString(keyBaseURL, defaults.Registry.BaseURL),
			UserAgent:         s.getString(keyUserAgent, defaults.Registry.UserAgent),
			RateLimitInterval: s.getMillis(keyRateLimitMS, defaults.Registry.RateLimitInterval),
			Timeout:           s.getSeconds(keyTimeoutS, defaults.Registry.Timeout),
			CacheSize:         s.getCacheSize(defaults.Registry.CacheSize),
		},
		Hydration: domain.HydrationSettings{
			Delay: s.getMillis(keyHydrationDelay, defaults.Hydration.Delay),
		},
		GitHub: domain.GitHubSettings{
			Token: s.configStore.GetString(keyGitHubToken),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyPageSize, settings.Search.PageSize},
		{keyScope, settings.Search.Scope.String()},
		{keySort, settings.Search.Sort.String()},
		{keyBaseURL, settings.Registry.BaseURL},
		{keyUserAgent, settings.Registry.UserAgent},
		{keyRateLimitMS, int(settings.Registry.RateLimitInterval / time.Millisecond)},
		{keyTimeoutS, int(settings.Registry.Timeout / time.Second)},
		{keyCacheSize, settings.Registry.CacheSize},
		{keyHydrationDelay, int(settings.Hydration.Delay / time.Millisecond)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.GitHub.Token != "" {
		if err := s.configStore.Set(keyGitHubToken, settings.GitHub.Token); err != nil {
			return fmt.Errorf("save %s: %w", keyGitHubToken, err)
		}
	}

	return nil
}

// Keys returns every supported setting key in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyPageSize, keyScope, keySort,
		keyBaseURL, keyUserAgent, keyRateLimitMS, keyTimeoutS, keyCacheSize,
		keyHydrationDelay, keyGitHubToken,
	}
}

// Value returns the effective value of key as a string.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keyPageSize:
		return strconv.Itoa(settings.Search.PageSize), nil
	case keyScope:
		return settings.Search.Scope.String(), nil
	case keySort:
		return settings.Search.Sort.String(), nil
	case keyBaseURL:
		return settings.Registry.BaseURL, nil
	case keyUserAgent:
		return settings.Registry.UserAgent, nil
	case keyRateLimitMS:
		return strconv.FormatInt(settings.Registry.RateLimitInterval.Milliseconds(), 10), nil
	case keyTimeoutS:
		return strconv.Itoa(int(settings.Registry.Timeout / time.Second)), nil
	case keyCacheSize:
		return strconv.Itoa(settings.Registry.CacheSize), nil
	case keyHydrationDelay:
		return strconv.FormatInt(settings.Hydration.Delay.Milliseconds(), 10), nil
	case keyGitHubToken:
		if settings.GitHub.HasToken() {
			return "********", nil
		}
		return "", nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// SetValue validates value and stores it under key.
func (s *SettingsService) SetValue(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case keyPageSize, keyRateLimitMS, keyTimeoutS, keyHydrationDelay:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case keyCacheSize:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be zero or a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case keyScope:
		scope, err := domain.ParseScope(value)
		if err != nil {
			return err
		}
		stored = scope.String()
	case keySort:
		sort, err := domain.ParseSort(value)
		if err != nil {
			return err
		}
		stored = sort.String()
	case keyBaseURL:
		if err := validateBaseURL(value); err != nil {
			return err
		}
		if !strings.HasSuffix(value, "/") {
			value += "/"
		}
		stored = value
	case keyUserAgent:
		if value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		stored = value
	case keyGitHubToken:
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks the stored settings. Unlike Get it reports invalid
// values instead of replacing them with defaults.
func (s *SettingsService) Validate() error {
	if v := s.configStore.GetString(keyScope); v != "" {
		if _, err := domain.ParseScope(v); err != nil {
			return err
		}
	}
	if v := s.configStore.GetString(keySort); v != "" {
		if _, err := domain.ParseSort(v); err != nil {
			return err
		}
	}
	if v := s.configStore.GetString(keyBaseURL); v != "" {
		if err := validateBaseURL(v); err != nil {
			return err
		}
	}
	for _, key := range []string{keyPageSize, keyRateLimitMS, keyTimeoutS, keyHydrationDelay} {
		if _, exists := s.configStore.Get(key); exists && s.configStore.GetInt(key) <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func validateBaseURL(v string) error {
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL", domain.ErrInvalidInput, keyBaseURL)
	}
	return nil
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

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getCacheSize(defaultVal int) int {
	if _, exists := s.configStore.Get(keyCacheSize); !exists {
		return defaultVal
	}
	if val := s.configStore.GetInt(keyCacheSize); val >= 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getScope(defaultVal domain.Scope) domain.Scope {
	scope, err := domain.ParseScope(s.configStore.GetString(keyScope))
	if err != nil {
		return defaultVal
	}
	return scope
}

func (s *SettingsService) getSort(defaultVal domain.Sort) domain.Sort {
	sort, err := domain.ParseSort(s.configStore.GetString(keySort))
	if err != nil {
		return defaultVal
	}
	return sort
}
