package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driving"
	"github.com/custodia-labs/vulnsearch/internal/logger"
)

// Ensure ToolService implements the interface.
var _ driving.ToolService = (*ToolService)(nil)

// ToolService answers the host's "list tools" and "call tool" requests.
type ToolService struct {
	registry *ToolRegistry
	search   driving.SearchService
}

// NewToolService creates a new tool service.
func NewToolService(registry *ToolRegistry, search driving.SearchService) *ToolService {
	return &ToolService{
		registry: registry,
		search:   search,
	}
}

// ListTools returns the tool catalog.
func (s *ToolService) ListTools() []domain.ToolDescriptor {
	return s.registry.ListTools()
}

// Invoke runs a tool and collapses every outcome into a ToolResult.
// Panics below this point are recovered and reported as unexpected errors.
func (s *ToolService) Invoke(ctx context.Context, name string, arguments map[string]any) (result domain.ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("recovered from panic in tool %q: %v", name, r)
			result = domain.ErrResult(domain.UnexpectedError(fmt.Errorf("%v", r)))
		}
	}()

	logger.Section("Tool Call")
	logger.Debug("Tool: %s", name)

	if _, ok := s.registry.Lookup(name); !ok {
		return domain.ErrResult(domain.NewSearchError(
			domain.ErrorKindValidation,
			fmt.Sprintf(domain.ReasonUnknownToolFormat, name),
		))
	}

	query, err := QueryArgument(arguments)
	if err != nil {
		return domain.ErrResult(err)
	}

	summary, err := s.search.Search(ctx, domain.SearchRequest{Query: query})
	if err != nil {
		se := domain.AsSearchError(err)
		logger.Warn("Search failed (%s): %s", se.Kind, se.Reason)
		return domain.ToolResult{Err: se}
	}
	if summary == nil {
		return domain.ErrResult(domain.UnexpectedError(errors.New("search returned no result")))
	}

	return domain.OkResult(summary)
}
