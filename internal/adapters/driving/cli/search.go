package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the vulnerability database",
	Long: `Runs the search_vulnerabilities tool once, exactly as an AI assistant
would. The query can be a Solidity snippet or a natural language
description such as "reentrancy attack" or "unchecked external call".

Use --json to print the raw tool result.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output the tool result as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	tools, _, err := buildToolService()
	if err != nil {
		printHints(cmd, err)
		return err
	}

	result := tools.Invoke(cmd.Context(), domain.ToolSearchVulnerabilities, map[string]any{
		domain.ArgQuery: args[0],
	})

	if searchJSON {
		text, err := result.Text()
		if err != nil {
			return fmt.Errorf("failed to render result: %w", err)
		}
		cmd.Println(text)
	} else if result.Ok != nil {
		outputSearchSummary(cmd, result.Ok)
	}

	if result.Err != nil {
		if !searchJSON {
			printHints(cmd, result.Err)
		}
		return fmt.Errorf("search failed: %w", result.Err)
	}
	return nil
}

func outputSearchSummary(cmd *cobra.Command, summary *domain.SearchSummary) {
	cmd.Println(theme.Title.Render(summary.Summary))
	cmd.Println()

	if len(summary.TopResults) == 0 {
		cmd.Println("No results found.")
		return
	}

	for i := range summary.TopResults {
		r := &summary.TopResults[i]
		// Format: [N] Title (Severity, score)
		cmd.Printf("  [%d] %s (%s, %.2f)\n", r.Rank, r.Title, theme.Severity(r.Severity).Render(r.Severity), r.Score())
		if r.Category != domain.NotAvailable {
			cmd.Printf("      Category: %s\n", r.Category)
		}
		if file := r.File(); file != domain.NotAvailable {
			cmd.Printf("      File: %s\n", file)
		}
		if r.Description != domain.NotAvailable {
			cmd.Printf("      %s\n", truncate(r.Description, 200))
		}
		if r.Mitigation != domain.NotAvailable {
			cmd.Printf("      %s %s\n", theme.Success.Render("Mitigation:"), truncate(r.Mitigation, 200))
		}
		cmd.Println()
	}

	if summary.Note != "" {
		cmd.Println(theme.Muted.Render(summary.Note))
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
