// Package cli provides the vulnsearch command line interface.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vulnsearch/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/vulnsearch/internal/core/domain"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driving"
	"github.com/custodia-labs/vulnsearch/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vulnsearch",
	Short: "Smart contract vulnerability search for AI assistants",
	Long: `vulnsearch exposes a remote smart contract vulnerability database to
AI assistants over the Model Context Protocol (MCP).

Configure the API once, register the server with Claude Desktop and
ask the assistant about Solidity code:

  vulnsearch config set-key
  vulnsearch config set-url https://api.example.com
  vulnsearch check
  vulnsearch setup`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

// ToolFactory builds the tool service for resolved settings.
type ToolFactory func(settings domain.APISettings) (driving.ToolService, error)

// Services holds the services driven by the commands.
type Services struct {
	Settings driving.SettingsService
	Setup    driving.SetupService
	NewTools ToolFactory
}

var (
	settingsService driving.SettingsService
	setupService    driving.SetupService
	newToolService  ToolFactory

	theme = styles.DefaultStyles()
)

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	settingsService = s.Settings
	setupService = s.Setup
	newToolService = s.NewTools
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// buildToolService resolves the API settings and builds the tool service.
// The settings are returned even on error so callers can report them.
func buildToolService() (driving.ToolService, domain.APISettings, error) {
	if settingsService == nil {
		return nil, domain.APISettings{}, errors.New("settings service not configured")
	}
	if newToolService == nil {
		return nil, domain.APISettings{}, errors.New("tool service not configured")
	}

	settings, err := settingsService.Resolve()
	if err != nil {
		return nil, settings, err
	}

	tools, err := newToolService(settings)
	if err != nil {
		return nil, settings, err
	}
	return tools, settings, nil
}
