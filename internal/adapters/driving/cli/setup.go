package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

var (
	setupYes  bool
	setupName string
)

// executablePath locates the running binary. Replaced in tests.
var executablePath = os.Executable

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Register the MCP server with Claude Desktop",
	Long: `Adds this binary to Claude Desktop's claude_desktop_config.json so the
assistant can call the search_vulnerabilities tool.

Other servers and settings in the file are preserved. A file that cannot
be parsed is copied to claude_desktop_config.json.backup first.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupYes, "yes", "y", false, "overwrite an existing entry without asking")
	setupCmd.Flags().StringVar(&setupName, "name", domain.DefaultServerName, "server name in the host config")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}

	exe, err := executablePath()
	if err != nil {
		return fmt.Errorf("failed to locate vulnsearch binary: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	cmd.Println(theme.Title.Render("Claude Desktop MCP Setup"))
	cmd.Println()
	cmd.Println(theme.Label.Render("Config:") + setupService.ConfigPath())
	cmd.Println(theme.Label.Render("Command:") + exe + " serve")
	cmd.Println()

	if settingsService != nil {
		if _, err := settingsService.Resolve(); err != nil {
			cmd.Println(theme.Warning.Render("Warning: API settings are incomplete: " + err.Error()))
			printHints(cmd, err)
			cmd.Println()
		}
	}

	overwrite := setupYes
	registered, err := setupService.IsRegistered(setupName)
	if err != nil {
		return fmt.Errorf("failed to read host config: %w", err)
	}
	if registered && !overwrite {
		cmd.Println(theme.Warning.Render(fmt.Sprintf("%q is already registered.", setupName)))
		overwrite = confirm(cmd, "Do you want to overwrite it? (y/N): ")
	}

	result, err := setupService.Register(domain.HostRegistration{
		ServerName: setupName,
		Command:    exe,
		Args:       []string{"serve"},
		Env:        map[string]string{},
	}, overwrite)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	if result.BackupPath != "" {
		cmd.Println(theme.Warning.Render("Existing config could not be parsed; backup saved to " + result.BackupPath))
	}

	switch result.Status {
	case domain.RegistrationKept:
		cmd.Println("Keeping existing configuration.")
		return nil
	case domain.RegistrationReplaced:
		cmd.Println(theme.Success.Render(fmt.Sprintf("Updated %q in %s", setupName, result.ConfigPath)))
	default:
		cmd.Println(theme.Success.Render(fmt.Sprintf("Added %q to %s", setupName, result.ConfigPath)))
	}

	cmd.Println()
	cmd.Println("Next steps:")
	cmd.Println("  1. Restart Claude Desktop")
	cmd.Println(`  2. Ask Claude: "What tools do you have available?"`)
	return nil
}
