package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/stackprobe/internal/core/domain"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driven"
	"github.com/custodia-labs/stackprobe/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAPIURL        = "crawl.api_url"
	keyAPIKey        = "crawl.api_key"
	keyLimit         = "crawl.limit"
	keyReturnFormat  = "crawl.return_format"
	keyRequest       = "crawl.request"
	keyFullResources = "crawl.full_resources"
	keyViewSort      = "view.sort"
	keyViewDirection = "view.direction"
	keyQueueURL      = "sqs.queue_url"
	keyQueueRegion   = "sqs.region"
	keyQueueMaxEmpty = "sqs.max_empty_polls"
	keyArchive       = "archive.enabled"
)

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvAPIURL       = "STACKPROBE_API_URL"
	EnvAPIKey       = "STACKPROBE_API_KEY"
	EnvSpiderAPIKey = "SPIDER_API_KEY"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore

	// getenv is replaced in tests.
	getenv func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current settings. Environment variables take precedence
// over the config file for the API URL and key.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Crawl: domain.CrawlSettings{
			APIURL:        s.getString(keyAPIURL, defaults.Crawl.APIURL),
			APIKey:        s.configStore.GetString(keyAPIKey),
			Limit:         s.getInt(keyLimit, defaults.Crawl.Limit),
			ReturnFormat:  s.getReturnFormat(defaults.Crawl.ReturnFormat),
			Request:       s.getRequestMode(defaults.Crawl.Request),
			FullResources: s.getBool(keyFullResources, defaults.Crawl.FullResources),
		},
		View: domain.ViewSettings{
			SortKey:   s.getSortKey(defaults.View.SortKey),
			Direction: s.getDirection(defaults.View.Direction),
		},
		Queue: domain.QueueSettings{
			URL:           s.configStore.GetString(keyQueueURL),
			Region:        s.configStore.GetString(keyQueueRegion),
			MaxEmptyPolls: s.getInt(keyQueueMaxEmpty, defaults.Queue.MaxEmptyPolls),
		},
		Archive: domain.ArchiveSettings{
			Enabled: s.getBool(keyArchive, defaults.Archive.Enabled),
		},
	}

	if v := s.getenv(EnvAPIURL); v != "" {
		settings.Crawl.APIURL = v
	}
	if v := s.getenv(EnvAPIKey); v != "" {
		settings.Crawl.APIKey = v
	} else if v := s.getenv(EnvSpiderAPIKey); v != "" {
		settings.Crawl.APIKey = v
	}

	return settings, nil
}

// Save persists settings. An empty API key leaves the stored key untouched.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyAPIURL, settings.Crawl.APIURL},
		{keyLimit, settings.Crawl.Limit},
		{keyReturnFormat, string(settings.Crawl.ReturnFormat)},
		{keyRequest, string(settings.Crawl.Request)},
		{keyFullResources, settings.Crawl.FullResources},
		{keyViewSort, settings.View.SortKey.String()},
		{keyViewDirection, settings.View.Direction.String()},
		{keyQueueURL, settings.Queue.URL},
		{keyQueueRegion, settings.Queue.Region},
		{keyQueueMaxEmpty, settings.Queue.MaxEmptyPolls},
		{keyArchive, settings.Archive.Enabled},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.Crawl.APIKey != "" {
		if err := s.configStore.Set(keyAPIKey, settings.Crawl.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyAPIKey, err)
		}
	}
	return nil
}

// Set updates a single setting by key after validating the value.
//
//nolint:gocyclo // One case per config key
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case keyAPIURL, keyQueueURL, keyQueueRegion:
		stored = value
	case keyAPIKey:
		return s.SetAPIKey(value)
	case keyLimit, keyQueueMaxEmpty:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case keyFullResources, keyArchive:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	case keyReturnFormat:
		if !domain.ReturnFormat(value).IsValid() {
			return fmt.Errorf("%w: unknown return format %q", domain.ErrInvalidInput, value)
		}
		stored = value
	case keyRequest:
		if !domain.RequestMode(value).IsValid() {
			return fmt.Errorf("%w: unknown request mode %q", domain.ErrInvalidInput, value)
		}
		stored = value
	case keyViewSort:
		k, err := domain.ParseSortKey(value)
		if err != nil {
			return err
		}
		stored = k.String()
	case keyViewDirection:
		if !domain.SortDirection(value).IsValid() {
			return fmt.Errorf("%w: direction must be asc or desc", domain.ErrInvalidInput)
		}
		stored = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// SetAPIKey stores the crawl API key.
func (s *SettingsService) SetAPIKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("%w: API key is empty", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyAPIKey, apiKey); err != nil {
		return fmt.Errorf("save %s: %w", keyAPIKey, err)
	}
	return nil
}

// Keys lists the settable config keys.
func (s *SettingsService) Keys() []string {
	return []string{
		keyAPIURL, keyAPIKey, keyLimit, keyReturnFormat, keyRequest, keyFullResources,
		keyViewSort, keyViewDirection,
		keyQueueURL, keyQueueRegion, keyQueueMaxEmpty,
		keyArchive,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
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
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getReturnFormat(defaultVal domain.ReturnFormat) domain.ReturnFormat {
	f := domain.ReturnFormat(s.configStore.GetString(keyReturnFormat))
	if !f.IsValid() {
		return defaultVal
	}
	return f
}

func (s *SettingsService) getRequestMode(defaultVal domain.RequestMode) domain.RequestMode {
	m := domain.RequestMode(s.configStore.GetString(keyRequest))
	if !m.IsValid() {
		return defaultVal
	}
	return m
}

func (s *SettingsService) getSortKey(defaultVal domain.SortKey) domain.SortKey {
	k := domain.SortKey(s.configStore.GetString(keyViewSort))
	if !k.IsValid() {
		return defaultVal
	}
	return k
}

func (s *SettingsService) getDirection(defaultVal domain.SortDirection) domain.SortDirection {
	d := domain.SortDirection(s.configStore.GetString(keyViewDirection))
	if !d.IsValid() {
		return defaultVal
	}
	return d
}
