// Package domain defines the core business entities for vulnsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ToolDescriptor: The single tool published to an MCP host
//   - SearchRequest / SearchResponse: One round trip to the search backend
//   - VulnerabilityRecord: A record as returned by the backend
//   - ToolResult: The normalised outcome of every tool invocation
//   - SearchError: A classified failure (validation, auth, quota, ...)
//   - APISettings: Credentials and endpoint of the backend
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
