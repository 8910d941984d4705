package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a tool invocation can end in.
// The set is closed: callers may switch over it exhaustively.
type ErrorKind string

// Error kinds.
const (
	// ErrorKindValidation covers bad tool names and bad arguments.
	// Detected before any network I/O.
	ErrorKindValidation ErrorKind = "validation"

	// ErrorKindAuth is a backend 401.
	ErrorKindAuth ErrorKind = "auth"

	// ErrorKindQuota is a backend 403.
	ErrorKindQuota ErrorKind = "quota"

	// ErrorKindRateLimit is a backend 429.
	ErrorKindRateLimit ErrorKind = "rate_limit"

	// ErrorKindBackend is any other non-200 status, or a failure envelope
	// returned with status 200.
	ErrorKindBackend ErrorKind = "backend"

	// ErrorKindTimeout means the backend did not answer in time.
	ErrorKindTimeout ErrorKind = "timeout"

	// ErrorKindConnect means no connection to the backend could be made.
	ErrorKindConnect ErrorKind = "connect"

	// ErrorKindUnexpected is the catch-all for malformed responses and
	// internal faults.
	ErrorKindUnexpected ErrorKind = "unexpected"
)

// String returns the string representation.
func (k ErrorKind) String() string {
	return string(k)
}

// IsRetryable reports whether retrying the same request later may succeed.
// No component retries on its own; this only informs the caller.
func (k ErrorKind) IsRetryable() bool {
	switch k {
	case ErrorKindRateLimit, ErrorKindTimeout, ErrorKindConnect:
		return true
	default:
		return false
	}
}

// Sentinel errors, one per kind. A *SearchError matches the sentinel of its
// kind under errors.Is.
var (
	// ErrValidation indicates the tool name or arguments were rejected.
	ErrValidation = errors.New("validation failed")

	// ErrAuth indicates the backend rejected the API key.
	ErrAuth = errors.New("authentication invalid")

	// ErrQuota indicates the account quota is exhausted.
	ErrQuota = errors.New("quota exceeded")

	// ErrRateLimited indicates the backend rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrBackend indicates the backend answered with an error.
	ErrBackend = errors.New("backend error")

	// ErrTimeout indicates the request did not complete in time.
	ErrTimeout = errors.New("request timeout")

	// ErrConnect indicates the backend could not be reached.
	ErrConnect = errors.New("connection failed")

	// ErrUnexpected indicates a malformed response or an internal fault.
	ErrUnexpected = errors.New("unexpected error")
)

var kindSentinels = map[ErrorKind]error{
	ErrorKindValidation: ErrValidation,
	ErrorKindAuth:       ErrAuth,
	ErrorKindQuota:      ErrQuota,
	ErrorKindRateLimit:  ErrRateLimited,
	ErrorKindBackend:    ErrBackend,
	ErrorKindTimeout:    ErrTimeout,
	ErrorKindConnect:    ErrConnect,
	ErrorKindUnexpected: ErrUnexpected,
}

// Configuration errors.
var (
	// ErrMissingAPIKey indicates no API key was configured.
	ErrMissingAPIKey = errors.New("API key is not set")

	// ErrMissingAPIURL indicates no API URL was configured.
	ErrMissingAPIURL = errors.New("API URL is not set")

	// ErrInvalidAPIKey indicates the API key does not follow the sk_ convention.
	ErrInvalidAPIKey = errors.New("invalid API key format")

	// ErrInvalidAPIURL indicates the API URL is not an http(s) URL.
	ErrInvalidAPIURL = errors.New("invalid API URL format")

	// ErrHostConfigInvalid indicates a host configuration file could not be parsed.
	ErrHostConfigInvalid = errors.New("host configuration is not valid JSON")
)

// SearchError is a classified tool invocation failure.
type SearchError struct {
	// Kind is the failure class.
	Kind ErrorKind

	// Reason is the human-readable message shown to the host.
	Reason string

	// Envelope holds the backend's own failure envelope when it must be
	// passed through to the host unchanged.
	Envelope []byte

	// Err is the underlying cause, if any.
	Err error
}

// NewSearchError creates a SearchError with the given kind and reason.
func NewSearchError(kind ErrorKind, reason string) *SearchError {
	return &SearchError{Kind: kind, Reason: reason}
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	return e.Reason
}

// Unwrap returns the underlying cause.
func (e *SearchError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel of e.
func (e *SearchError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Canonical reasons shared by the adapters.
const (
	ReasonUnknownToolFormat = "Unknown tool: %s"
	ReasonMissingQuery      = "Missing required parameter: query"
	ReasonQueryNotString    = "Query must be a string"
	ReasonQueryTooShort     = "Query must be at least %d characters long"
	ReasonQueryTooLong      = "Query must be at most %d characters long"
	ReasonInvalidAPIKey     = "Invalid API key. Please check your API key in the configuration."
	ReasonQuotaExceeded     = "Quota exceeded. Please upgrade your plan or wait for quota reset."
	ReasonRateLimited       = "Rate limit exceeded. Please wait a moment and try again."
	ReasonAPIErrorFormat    = "API error: %d - %s"
	ReasonTimeout           = "Request timeout. The server took too long to respond."
	ReasonConnectFormat     = "Connection error. Cannot connect to API server at %s"
	ReasonUnexpectedFormat  = "Unexpected error: %s"
	ReasonBackendFailure    = "backend reported failure"
)

// UnexpectedError wraps err as an ErrorKindUnexpected SearchError.
func UnexpectedError(err error) *SearchError {
	return &SearchError{
		Kind:   ErrorKindUnexpected,
		Reason: fmt.Sprintf(ReasonUnexpectedFormat, err),
		Err:    err,
	}
}

// AsSearchError converts any error into a *SearchError. Errors that are not
// already classified become ErrorKindUnexpected.
func AsSearchError(err error) *SearchError {
	if err == nil {
		return nil
	}
	var se *SearchError
	if errors.As(err, &se) {
		return se
	}
	return UnexpectedError(err)
}
