package services

import (
	"fmt"
	"os"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driven"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAPIKey = "api.key"
	keyAPIURL = "api.url"
)

// Environment variables, highest precedence first.
var (
	apiKeyEnvVars = []string{"MCP_API_KEY", "API_KEY"}
	apiURLEnvVars = []string{"MCP_API_URL", "API_URL"}
)

// sourceFile marks a value read from the configuration file.
const sourceFile = "file"

// SettingsService resolves the backend settings from the environment and
// the configuration file.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// configStore may be nil, in which case only the environment is consulted.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// SetEnvLookup replaces the environment lookup. Useful for testing.
func (s *SettingsService) SetEnvLookup(fn func(string) (string, bool)) {
	s.lookupEnv = fn
}

// Get returns the effective, normalised settings without validating them.
func (s *SettingsService) Get() (domain.APISettings, error) {
	key, _ := s.resolve(apiKeyEnvVars, keyAPIKey)
	url, _ := s.resolve(apiURLEnvVars, keyAPIURL)

	return domain.APISettings{APIKey: key, APIURL: url}.Normalised(), nil
}

// Resolve returns the effective settings and validates them.
func (s *SettingsService) Resolve() (domain.APISettings, error) {
	settings, err := s.Get()
	if err != nil {
		return domain.APISettings{}, err
	}
	if err := settings.Validate(); err != nil {
		return domain.APISettings{}, err
	}
	return settings, nil
}

// SetAPIKey validates and persists the API key.
func (s *SettingsService) SetAPIKey(key string) error {
	if err := domain.ValidateAPIKey(key); err != nil {
		return err
	}
	return s.set(keyAPIKey, key)
}

// SetAPIURL validates and persists the API URL.
func (s *SettingsService) SetAPIURL(url string) error {
	settings := domain.APISettings{APIURL: url}.Normalised()
	if err := domain.ValidateAPIURL(settings.APIURL); err != nil {
		return err
	}
	return s.set(keyAPIURL, settings.APIURL)
}

// Sources reports where each effective value came from.
func (s *SettingsService) Sources() driving.SettingSources {
	_, keySource := s.resolve(apiKeyEnvVars, keyAPIKey)
	_, urlSource := s.resolve(apiURLEnvVars, keyAPIURL)
	return driving.SettingSources{APIKey: keySource, APIURL: urlSource}
}

// ConfigPath returns the configuration file path, or "" without a store.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) resolve(envVars []string, configKey string) (value, source string) {
	for _, name := range envVars {
		if v, ok := s.lookupEnv(name); ok && v != "" {
			return v, "env:" + name
		}
	}
	if s.configStore != nil {
		if v := s.configStore.GetString(configKey); v != "" {
			return v, sourceFile
		}
	}
	return "", ""
}

func (s *SettingsService) set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("save %s: no configuration store", key)
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
