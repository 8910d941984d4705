package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage API settings",
	Long: `View and configure the vulnerability API key and URL.

Settings are read from the environment first (MCP_API_KEY, API_KEY,
MCP_API_URL, API_URL) and then from ~/.vulnsearch/config.toml.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Store the API key",
	Long:  `Store the API key in the configuration file. Without an argument the key is read from stdin without echo.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigSetKey,
}

var configSetURLCmd = &cobra.Command{
	Use:   "set-url [url]",
	Short: "Store the API URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetURL,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configSetURLCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	sources := settingsService.Sources()

	cmd.Println(theme.Title.Render("Current Settings"))
	cmd.Println()

	path := settingsService.ConfigPath()
	if path == "" {
		path = "(none)"
	}
	cmd.Println(theme.Label.Render("Config:") + path)

	if settings.APIURL != "" {
		cmd.Println(theme.Label.Render("API URL:") + settings.APIURL + describeSource(sources.APIURL))
	} else {
		cmd.Println(theme.Label.Render("API URL:") + "(not set)")
	}

	if settings.APIKey != "" {
		cmd.Println(theme.Label.Render("API key:") + domain.MaskSecret(settings.APIKey) + describeSource(sources.APIKey))
	} else {
		cmd.Println(theme.Label.Render("API key:") + "(not set)")
	}

	if err := settings.Validate(); err != nil {
		cmd.Println(theme.Label.Render("Status:") + theme.Warning.Render("not configured: "+err.Error()))
		printHints(cmd, err)
		return nil
	}
	cmd.Println(theme.Label.Render("Status:") + theme.Success.Render("configured"))
	return nil
}

func runConfigSetKey(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		cmd.Print("Enter API key: ")
		key = readSecret(cmd)
	}

	if err := settingsService.SetAPIKey(strings.TrimSpace(key)); err != nil {
		printHints(cmd, err)
		return fmt.Errorf("failed to save API key: %w", err)
	}

	cmd.Printf("API key %s saved to %s\n", domain.MaskSecret(key), settingsService.ConfigPath())
	warnEnvOverride(cmd, settingsService.Sources().APIKey)
	return nil
}

func runConfigSetURL(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetAPIURL(args[0]); err != nil {
		printHints(cmd, err)
		return fmt.Errorf("failed to save API URL: %w", err)
	}

	cmd.Printf("API URL saved to %s\n", settingsService.ConfigPath())
	warnEnvOverride(cmd, settingsService.Sources().APIURL)
	return nil
}

func describeSource(source string) string {
	if source == "" {
		return ""
	}
	return " " + theme.Muted.Render("("+source+")")
}

// warnEnvOverride tells the user when the stored value is shadowed by the
// environment.
func warnEnvOverride(cmd *cobra.Command, source string) {
	if name, ok := strings.CutPrefix(source, "env:"); ok {
		cmd.Println(theme.Warning.Render(fmt.Sprintf("Warning: %s is set in the environment and takes precedence", name)))
	}
}
