// Command vulnsearch serves the smart contract vulnerability search tool
// to AI assistants over the Model Context Protocol.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/vulnsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/vulnsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/vulnsearch/internal/adapters/driven/vulnapi"
	"github.com/custodia-labs/vulnsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/vulnsearch/internal/core/domain"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driven"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driving"
	"github.com/custodia-labs/vulnsearch/internal/core/services"
	"github.com/custodia-labs/vulnsearch/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetServices(cli.Services{
		Settings: services.NewSettingsService(openConfigStore()),
		Setup:    openSetupService(),
		NewTools: newToolService,
	})

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// openConfigStore falls back to an in-memory store when the config file
// cannot be used, so the environment alone can still configure the server.
func openConfigStore() driven.ConfigStore {
	store, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring config file, settings will not be saved: %v\n", err)
		return memory.NewConfigStore(nil)
	}
	return store
}

func openSetupService() driving.SetupService {
	path, err := file.DefaultClaudeDesktopPath()
	if err != nil {
		logger.Warn("Claude Desktop config not available: %v", err)
		return nil
	}
	return services.NewSetupService(file.NewHostConfig(path))
}

func newToolService(settings domain.APISettings) (driving.ToolService, error) {
	client, err := vulnapi.NewClient(vulnapi.Config{Settings: settings})
	if err != nil {
		return nil, err
	}
	logger.Debug("Backend: %s", client.BaseURL())
	return services.NewToolService(services.NewToolRegistry(), services.NewSearchAdapter(client)), nil
}
