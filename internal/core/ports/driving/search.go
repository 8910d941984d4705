package driving

import (
	"context"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// SearchService runs a vulnerability search against the backend.
type SearchService interface {
	// Search validates the request, calls the backend and normalises the
	// response. Any returned error is a *domain.SearchError.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchSummary, error)
}
