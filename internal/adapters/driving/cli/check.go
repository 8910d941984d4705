package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// checkQuery is the query sent by the connection test.
const checkQuery = "reentrancy attack"

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test the API configuration and connection",
	Long: `Loads the API settings and sends a test query to the backend.
Exits non-zero and prints troubleshooting hints when either step fails.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cmd.Println(theme.Subtitle.Render("Step 1: Configuration"))

	tools, settings, err := buildToolService()
	if err != nil {
		cmd.Println(theme.Error.Render("FAILED: " + err.Error()))
		printHints(cmd, err)
		return fmt.Errorf("configuration check failed: %w", err)
	}

	cmd.Println(theme.Success.Render("OK: configuration loaded"))
	cmd.Println("  " + theme.Label.Render("API URL:") + settings.APIURL)
	cmd.Println("  " + theme.Label.Render("API key:") + domain.MaskSecret(settings.APIKey))
	cmd.Println()

	cmd.Println(theme.Subtitle.Render("Step 2: API connection"))
	cmd.Printf("Sending test query: %q\n", checkQuery)

	result := tools.Invoke(cmd.Context(), domain.ToolSearchVulnerabilities, map[string]any{
		domain.ArgQuery: checkQuery,
	})
	if result.Err != nil {
		cmd.Println(theme.Error.Render("FAILED: API returned error: " + result.Err.Reason))
		printHints(cmd, result.Err)
		return fmt.Errorf("connection check failed: %w", result.Err)
	}

	cmd.Println(theme.Success.Render("OK: API connection successful"))
	cmd.Printf("  Found %d vulnerabilities\n", result.Ok.TotalFound)
	if len(result.Ok.TopResults) > 0 {
		first := result.Ok.TopResults[0]
		cmd.Println()
		cmd.Println("  First result:")
		cmd.Printf("  - Title: %s\n", first.Title)
		cmd.Printf("  - Severity: %s\n", theme.Severity(first.Severity).Render(first.Severity))
		cmd.Printf("  - Score: %.2f\n", first.Score())
	}

	cmd.Println()
	cmd.Println("Next steps:")
	cmd.Println("  1. Run: vulnsearch setup")
	cmd.Println("  2. Restart Claude Desktop")
	cmd.Println(`  3. Ask Claude: "What tools do you have available?"`)
	return nil
}
