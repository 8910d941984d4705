package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driven"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driving"
	"github.com/custodia-labs/vulnsearch/internal/logger"
)

// Ensure SearchAdapter implements the interface.
var _ driving.SearchService = (*SearchAdapter)(nil)

// maxTopResults caps the primary results handed to the host.
const maxTopResults = 5

// SearchAdapter validates a query, calls the backend and normalises its
// response. It holds no mutable state and is safe for concurrent use.
type SearchAdapter struct {
	api driven.VulnerabilityAPI
}

// NewSearchAdapter creates a new search adapter.
func NewSearchAdapter(api driven.VulnerabilityAPI) *SearchAdapter {
	return &SearchAdapter{api: api}
}

// Search runs one search. Every returned error is a *domain.SearchError.
func (s *SearchAdapter) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchSummary, error) {
	logger.Section("Vulnerability Search")

	if err := ValidateQuery(req.Query); err != nil {
		logger.Debug("Rejected query: %v", err)
		return nil, err
	}

	resp, err := s.api.Search(ctx, req)
	if err != nil {
		return nil, domain.AsSearchError(err)
	}
	if resp == nil {
		return nil, domain.UnexpectedError(errors.New("empty response from backend"))
	}

	return normalise(resp)
}

// normalise converts a decoded backend response into the host-facing summary.
func normalise(resp *domain.SearchResponse) (*domain.SearchSummary, error) {
	if !resp.Success {
		reason := resp.Error
		if reason == "" {
			reason = domain.ReasonBackendFailure
		}
		logger.Debug("Backend reported failure: %s", reason)
		return nil, &domain.SearchError{
			Kind:     domain.ErrorKindBackend,
			Reason:   reason,
			Envelope: resp.Raw,
		}
	}

	top := resp.Top5
	if len(top) > maxTopResults {
		top = top[:maxTopResults]
	}

	results := make([]domain.RankedVulnerability, len(top))
	for i := range top {
		results[i] = top[i].Ranked(i + 1)
	}

	summary := &domain.SearchSummary{
		Summary:    fmt.Sprintf("Found %d unique vulnerabilities", resp.TotalUniqueFiles),
		TotalFound: resp.TotalUniqueFiles,
		TopResults: results,
	}

	if extra := len(resp.Top6To10); extra > 0 {
		summary.AdditionalResultsAvailable = extra
		summary.Note = fmt.Sprintf("Found %d more results (ranks 6-10)", extra)
	}

	logger.Debug("Normalised %d results (%d total, %d additional)",
		len(results), resp.TotalUniqueFiles, summary.AdditionalResultsAvailable)
	return summary, nil
}
