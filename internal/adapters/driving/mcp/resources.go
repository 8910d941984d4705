package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// infoURI is the URI of the server info resource.
const infoURI = "vulnsearch://server/info"

// serverInfo is the body of the server info resource.
type serverInfo struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	BackendURL string   `json:"backend_url,omitempty"`
	Tools      []string `json:"tools"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         infoURI,
		Name:        "server-info",
		Description: "Server version, backend URL and published tools",
		MIMEType:    "application/json",
	}, s.handleInfoResource)
}

// handleInfoResource describes this server. The API key is never included.
func (s *Server) handleInfoResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info := serverInfo{
		Name:       "vulnsearch",
		Version:    Version,
		BackendURL: s.ports.BackendURL,
		Tools:      []string{},
	}
	for _, t := range s.ports.Tools.ListTools() {
		info.Tools = append(info.Tools, t.Name)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling server info: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
