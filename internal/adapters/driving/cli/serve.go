package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vulnsearch/internal/adapters/driving/mcp"
	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants. Logs and
the startup banner go to stderr; stdout carries the protocol.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  vulnsearch serve

  # HTTP mode (for MCP Inspector, remote access)
  vulnsearch serve --port 8080

Claude Desktop configuration (written by "vulnsearch setup"):
  {
    "mcpServers": {
      "vulnerabilities": {
        "command": "/path/to/vulnsearch",
        "args": ["serve"],
        "env": {}
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	tools, settings, err := buildToolService()
	if err != nil {
		cmd.PrintErrln(theme.Error.Render("Configuration error: " + err.Error()))
		printHints(cmd, err)
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Tools: tools, BackendURL: settings.APIURL})
	if err != nil {
		return err
	}

	transport := "stdio"
	addr := ""
	if servePort > 0 {
		addr = fmt.Sprintf(":%d", servePort)
		transport = "http://localhost" + addr
	}
	printBanner(cmd, settings, transport)

	if addr != "" {
		err = server.RunHTTP(cmd.Context(), addr)
	} else {
		err = server.Run(cmd.Context())
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printBanner(cmd *cobra.Command, settings domain.APISettings, transport string) {
	cmd.PrintErrln(theme.Title.Render(fmt.Sprintf("Vulnerability Search MCP Server %s", version)))
	cmd.PrintErrln(theme.Label.Render("API URL:") + settings.APIURL)
	cmd.PrintErrln(theme.Label.Render("API key:") + domain.MaskSecret(settings.APIKey))
	cmd.PrintErrln(theme.Label.Render("Transport:") + transport)
}
