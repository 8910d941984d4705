package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// registerTools publishes every tool in the catalog. Arguments are validated
// by the tool service, not by the SDK, so that violations come back as tool
// results the host can read.
func (s *Server) registerTools() {
	for _, t := range s.ports.Tools.ListTools() {
		s.server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: toJSONSchema(t.InputSchema),
		}, s.handleToolCall)
		s.known[t.Name] = struct{}{}
	}
}

// handleToolCall forwards a tools/call request to the tool service.
func (s *Server) handleToolCall(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.Params.Name
	args := decodeArguments(req.Params.Arguments)
	return toCallToolResult(s.ports.Tools.Invoke(ctx, name, args)), nil
}

// decodeArguments parses the raw arguments object. Anything that is not a
// JSON object is treated as no arguments at all.
func decodeArguments(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil
	}
	return args
}

// toCallToolResult renders a ToolResult as a single text block.
func toCallToolResult(result domain.ToolResult) *mcp.CallToolResult {
	text, err := result.Text()
	if err != nil {
		result = domain.ErrResult(domain.UnexpectedError(fmt.Errorf("render result: %w", err)))
		text, _ = result.Text()
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: result.IsError(),
	}
}

func toJSONSchema(in domain.InputSchema) *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:       in.Type,
		Properties: make(map[string]*jsonschema.Schema, len(in.Properties)),
		Required:   append([]string(nil), in.Required...),
	}
	for name, p := range in.Properties {
		out.Properties[name] = &jsonschema.Schema{
			Type:        p.Type,
			Description: p.Description,
			MinLength:   optionalInt(p.MinLength),
			MaxLength:   optionalInt(p.MaxLength),
		}
	}
	return out
}

// optionalInt maps zero to "not set".
func optionalInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
