package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// APIKeyPrefix is the conventional prefix of backend API keys.
const APIKeyPrefix = "sk_"

// APISettings holds the backend credentials and endpoint.
// Values are resolved once at startup and passed by value.
type APISettings struct {
	// APIKey is sent in the X-API-Key header.
	APIKey string

	// APIURL is the backend base URL, without trailing slash once normalised.
	APIURL string
}

// Normalised returns a copy with surrounding whitespace and any trailing
// slashes removed from the URL.
func (s APISettings) Normalised() APISettings {
	return APISettings{
		APIKey: strings.TrimSpace(s.APIKey),
		APIURL: strings.TrimRight(strings.TrimSpace(s.APIURL), "/"),
	}
}

// Validate checks that both values are present and well formed.
func (s APISettings) Validate() error {
	if s.APIKey == "" {
		return ErrMissingAPIKey
	}
	if s.APIURL == "" {
		return ErrMissingAPIURL
	}
	if err := ValidateAPIKey(s.APIKey); err != nil {
		return err
	}
	return ValidateAPIURL(s.APIURL)
}

// ValidateAPIKey checks the key against the sk_ convention.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrMissingAPIKey
	}
	if !strings.HasPrefix(key, APIKeyPrefix) {
		return fmt.Errorf("%w: API key should start with %q, got: %s",
			ErrInvalidAPIKey, APIKeyPrefix, MaskSecret(key))
	}
	return nil
}

// ValidateAPIURL checks that rawURL is an absolute http(s) URL.
func ValidateAPIURL(rawURL string) error {
	if rawURL == "" {
		return ErrMissingAPIURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: URL should start with 'http://' or 'https://', got: %s",
			ErrInvalidAPIURL, rawURL)
	}
	return nil
}

// IsConfigured returns true if both values are present.
func (s APISettings) IsConfigured() bool {
	return s.APIKey != "" && s.APIURL != ""
}

// MaskSecret shortens a secret for display, keeping only its first
// characters.
func MaskSecret(secret string) string {
	const visible = 10
	if len(secret) <= visible {
		return "****"
	}
	return secret[:visible] + "..."
}
