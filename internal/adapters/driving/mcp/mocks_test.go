package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// toolCall records a single Invoke.
type toolCall struct {
	name string
	args map[string]any
}

// mockToolService is a mock implementation of driving.ToolService.
type mockToolService struct {
	tools  []domain.ToolDescriptor
	result domain.ToolResult

	mu    sync.Mutex
	calls []toolCall
}

func newMockToolService() *mockToolService {
	return &mockToolService{
		tools: []domain.ToolDescriptor{{
			Name:        domain.ToolSearchVulnerabilities,
			Description: "Search for smart contract vulnerabilities",
			InputSchema: domain.InputSchema{
				Type: "object",
				Properties: map[string]domain.PropertySchema{
					domain.ArgQuery: {
						Type:      "string",
						MinLength: domain.MinQueryLength,
						MaxLength: domain.MaxQueryLength,
					},
				},
				Required: []string{domain.ArgQuery},
			},
		}},
		result: domain.OkResult(&domain.SearchSummary{
			Summary:    "Found 0 unique vulnerabilities",
			TopResults: []domain.RankedVulnerability{},
		}),
	}
}

func (m *mockToolService) ListTools() []domain.ToolDescriptor {
	return m.tools
}

func (m *mockToolService) Invoke(_ context.Context, name string, args map[string]any) domain.ToolResult {
	m.mu.Lock()
	m.calls = append(m.calls, toolCall{name: name, args: args})
	m.mu.Unlock()

	for _, t := range m.tools {
		if t.Name == name {
			return m.result
		}
	}
	return domain.ErrResult(domain.NewSearchError(domain.ErrorKindValidation, "Unknown tool: "+name))
}

func (m *mockToolService) recorded() []toolCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]toolCall(nil), m.calls...)
}
