package services

import (
	"fmt"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

const searchToolDescription = "Search for smart contract vulnerabilities in the database. " +
	"Accepts Solidity code snippets or natural language descriptions of security issues. " +
	"Returns the top 5 most relevant vulnerabilities with detailed information including " +
	"descriptions, code examples, and mitigation recommendations; " +
	"results ranked 6-10 are reported as a count only."

var queryDescription = fmt.Sprintf(
	"Search query - can be Solidity code or natural language description "+
		"of a vulnerability (e.g., 'reentrancy attack', 'integer overflow', "+
		"'unchecked external call'). Minimum %d characters.",
	domain.MinQueryLength,
)

// searchTool is the single published tool. It is never handed out directly;
// callers receive clones.
var searchTool = domain.ToolDescriptor{
	Name:        domain.ToolSearchVulnerabilities,
	Description: searchToolDescription,
	InputSchema: domain.InputSchema{
		Type: "object",
		Properties: map[string]domain.PropertySchema{
			domain.ArgQuery: {
				Type:        "string",
				Description: queryDescription,
				MinLength:   domain.MinQueryLength,
				MaxLength:   domain.MaxQueryLength,
			},
		},
		Required: []string{domain.ArgQuery},
	},
}

// ToolRegistry publishes the tool catalog.
type ToolRegistry struct{}

// NewToolRegistry creates a new tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{}
}

// ListTools returns the catalog. Each call returns fresh copies.
func (r *ToolRegistry) ListTools() []domain.ToolDescriptor {
	return []domain.ToolDescriptor{searchTool.Clone()}
}

// Lookup returns the descriptor for name.
func (r *ToolRegistry) Lookup(name string) (domain.ToolDescriptor, bool) {
	if name != searchTool.Name {
		return domain.ToolDescriptor{}, false
	}
	return searchTool.Clone(), true
}
