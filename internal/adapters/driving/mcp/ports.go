package mcp

import (
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Tools lists and invokes tools.
	Tools driving.ToolService

	// BackendURL is reported by the server info resource. Optional.
	BackendURL string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Tools == nil {
		return ErrMissingToolService
	}
	return nil
}
