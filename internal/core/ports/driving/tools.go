package driving

import (
	"context"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// ToolService is the capability interface an MCP host drives.
type ToolService interface {
	// ListTools returns the tool catalog. Pure and idempotent.
	ListTools() []domain.ToolDescriptor

	// Invoke runs the named tool with the given arguments. It always returns
	// exactly one result and never panics.
	Invoke(ctx context.Context, name string, arguments map[string]any) domain.ToolResult
}
