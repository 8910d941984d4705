package driving

import "github.com/custodia-labs/vulnsearch/internal/core/domain"

// SettingsService manages the backend credentials and endpoint.
type SettingsService interface {
	// Get returns the effective settings: environment variables take
	// precedence over the configuration file. The result is normalised
	// but not validated.
	Get() (domain.APISettings, error)

	// Resolve returns the effective settings and validates them.
	Resolve() (domain.APISettings, error)

	// SetAPIKey persists the API key to the configuration file.
	SetAPIKey(key string) error

	// SetAPIURL persists the API URL to the configuration file.
	SetAPIURL(url string) error

	// Sources reports where each effective value came from.
	Sources() SettingSources

	// ConfigPath returns the configuration file path.
	ConfigPath() string
}

// SettingSources names the origin of each effective setting,
// e.g. "env:MCP_API_KEY", "file" or "" when unset.
type SettingSources struct {
	APIKey string
	APIURL string
}
