package vulnapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driven"
	"github.com/custodia-labs/vulnsearch/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.VulnerabilityAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout = 60 * time.Second

	// SearchPath is the search endpoint relative to the base URL.
	SearchPath = "/api/v1/vulnerabilities/search"

	headerAPIKey    = "X-API-Key"
	headerRequestID = "X-Request-ID"
	userAgent       = "vulnsearch-mcp"
)

// Config holds configuration for the API client.
type Config struct {
	// Settings holds the API key and base URL (required).
	Settings domain.APISettings

	// Timeout bounds the whole request, body included (default: 60s).
	Timeout time.Duration

	// Transport overrides the HTTP transport. Useful for testing.
	Transport http.RoundTripper
}

// Client talks to the vulnerability search API.
// It is safe for concurrent use; connections are pooled by the transport.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a new API client.
func NewClient(cfg Config) (*Client, error) {
	settings := cfg.Settings.Normalised()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("vulnapi: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		baseURL: settings.APIURL,
		apiKey:  settings.APIKey,
	}, nil
}

// BaseURL returns the normalised API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search posts the query and decodes the response.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, domain.UnexpectedError(fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SearchPath, bytes.NewReader(body))
	if err != nil {
		return nil, domain.UnexpectedError(fmt.Errorf("create request: %w", err))
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set(headerAPIKey, c.apiKey)
	httpReq.Header.Set(headerRequestID, requestID)

	logger.Debug("POST %s (request %s, key %s)", c.baseURL+SearchPath, requestID, domain.MaskSecret(c.apiKey))
	start := time.Now()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err, c.baseURL)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err, c.baseURL)
	}

	logger.Debug("Response %d in %s (request %s, %d bytes)",
		resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID, len(respBody))

	if err := statusError(resp.StatusCode, respBody); err != nil {
		return nil, err
	}

	return decodeResponse(respBody)
}

// statusError maps a non-200 status onto its error kind. First match wins.
func statusError(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return domain.NewSearchError(domain.ErrorKindAuth, domain.ReasonInvalidAPIKey)
	case status == http.StatusForbidden:
		return domain.NewSearchError(domain.ErrorKindQuota, domain.ReasonQuotaExceeded)
	case status == http.StatusTooManyRequests:
		return domain.NewSearchError(domain.ErrorKindRateLimit, domain.ReasonRateLimited)
	case status != http.StatusOK:
		return domain.NewSearchError(domain.ErrorKindBackend,
			fmt.Sprintf(domain.ReasonAPIErrorFormat, status, string(body)))
	default:
		return nil
	}
}

// classifyTransportError maps errors from the round trip onto timeout,
// connect or unexpected.
func classifyTransportError(err error, baseURL string) error {
	switch {
	case isTimeout(err):
		return &domain.SearchError{Kind: domain.ErrorKindTimeout, Reason: domain.ReasonTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return &domain.SearchError{
			Kind:   domain.ErrorKindUnexpected,
			Reason: fmt.Sprintf(domain.ReasonUnexpectedFormat, "request cancelled"),
			Err:    err,
		}
	case isConnectFailure(err):
		return &domain.SearchError{
			Kind:   domain.ErrorKindConnect,
			Reason: fmt.Sprintf(domain.ReasonConnectFormat, baseURL),
			Err:    err,
		}
	default:
		return domain.UnexpectedError(err)
	}
}
