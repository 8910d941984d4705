package driven

import (
	"context"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// VulnerabilityAPI is the remote vulnerability search backend.
type VulnerabilityAPI interface {
	// Search issues one search request. Transport and status failures are
	// returned as *domain.SearchError with the matching kind; a decoded
	// response is returned for status 200 regardless of its success flag.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)

	// BaseURL returns the normalised backend URL.
	BaseURL() string
}
