// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It exposes the vulnerability search tool to AI assistants such as Claude.
package mcp

import "errors"

// ErrMissingToolService is returned when the tool service is not provided.
var ErrMissingToolService = errors.New("mcp: tool service is required")
