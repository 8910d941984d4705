package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

// troubleshooting returns remediation hints for err, or nil.
func troubleshooting(err error) []string {
	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		return []string{
			"Set MCP_API_KEY or API_KEY in the environment",
			"Or store it with: vulnsearch config set-key",
		}
	case errors.Is(err, domain.ErrInvalidAPIKey):
		return []string{
			"API keys start with " + domain.APIKeyPrefix,
			"Copy the key again from your dashboard",
		}
	case errors.Is(err, domain.ErrMissingAPIURL), errors.Is(err, domain.ErrInvalidAPIURL):
		return []string{
			"Set MCP_API_URL or API_URL in the environment",
			"Or store it with: vulnsearch config set-url https://yourdomain.com",
		}
	case errors.Is(err, domain.ErrAuth):
		return []string{
			"Check that your API key is correct",
			"Verify the key is active in your dashboard",
			"Try creating a new API key",
		}
	case errors.Is(err, domain.ErrQuota):
		return []string{
			"Check your quota in the dashboard",
			"Wait for the monthly quota reset",
			"Upgrade to a higher plan",
		}
	case errors.Is(err, domain.ErrConnect):
		return []string{
			"Check your internet connection",
			"Verify the API URL is correct",
			"Try opening the API URL in your browser",
		}
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, domain.ErrRateLimited):
		return []string{"Wait a moment and try again"}
	}
	return nil
}

// printHints writes hints for err to the command's error stream.
func printHints(cmd *cobra.Command, err error) {
	hints := troubleshooting(err)
	if len(hints) == 0 {
		return
	}
	cmd.PrintErrln()
	cmd.PrintErrln(theme.Subtitle.Render("Troubleshooting:"))
	for _, h := range hints {
		cmd.PrintErrln("  - " + h)
	}
}
