package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

func sampleSummary() *domain.SearchSummary {
	return &domain.SearchSummary{
		Summary:    "Found 12 unique vulnerabilities",
		TotalFound: 12,
		TopResults: []domain.RankedVulnerability{{
			Rank:          1,
			Title:         "Reentrancy in withdraw()",
			Severity:      "High",
			FinalScore:    json.RawMessage(`0.91`),
			Description:   "External call before state update.",
			CodeExample:   domain.NotAvailable,
			Mitigation:    "Use checks-effects-interactions.",
			Category:      "reentrancy",
			FileReference: json.RawMessage(`"N/A"`),
		}},
		AdditionalResultsAvailable: 3,
		Note:                       "Found 3 more results (ranks 6-10)",
	}
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	e := setupTestServices(t)

	err := e.run("", "search")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasJSONFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("json")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestSearchCmd_HumanOutput(t *testing.T) {
	e := setupTestServices(t)
	e.configure()
	e.tools.result = domain.OkResult(sampleSummary())

	err := e.run("", "search", "reentrancy attack")

	require.NoError(t, err)
	out := e.stdout.String()
	assert.Contains(t, out, "Found 12 unique vulnerabilities")
	assert.Contains(t, out, "[1] Reentrancy in withdraw()")
	assert.Contains(t, out, "Category: reentrancy")
	assert.Contains(t, out, "Use checks-effects-interactions.")
	assert.NotContains(t, out, "File:")
	assert.Contains(t, out, "Found 3 more results (ranks 6-10)")

	assert.Equal(t, []any{"reentrancy attack"}, e.tools.queries)
	require.Len(t, e.built, 1)
	assert.Equal(t, "https://api.example.com", e.built[0].APIURL)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	e := setupTestServices(t)
	e.configure()
	e.tools.result = domain.OkResult(sampleSummary())

	err := e.run("", "search", "--json", "reentrancy attack")

	require.NoError(t, err)
	assert.Contains(t, e.stdout.String(), "{\n  \"success\": true,\n  \"summary\": \"Found 12 unique vulnerabilities\"")
}

func TestSearchCmd_NoResults(t *testing.T) {
	e := setupTestServices(t)
	e.configure()

	err := e.run("", "search", "obscure pattern")

	require.NoError(t, err)
	assert.Contains(t, e.stdout.String(), "No results found.")
}

func TestSearchCmd_ToolErrorFailsWithHints(t *testing.T) {
	e := setupTestServices(t)
	e.configure()
	e.tools.result = domain.ErrResult(domain.NewSearchError(domain.ErrorKindAuth, domain.ReasonInvalidAPIKey))

	err := e.run("", "search", "reentrancy attack")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Contains(t, err.Error(), domain.ReasonInvalidAPIKey)
	assert.Contains(t, e.stderr.String(), "Check that your API key is correct")
}

func TestSearchCmd_JSONErrorStillPrintsResult(t *testing.T) {
	e := setupTestServices(t)
	e.configure()
	e.tools.result = domain.ErrResult(domain.NewSearchError(domain.ErrorKindValidation, "Query must be at least 3 characters long"))

	err := e.run("", "search", "--json", "ab")

	require.Error(t, err)
	assert.Contains(t, e.stdout.String(), `"error": "Query must be at least 3 characters long"`)
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	e := setupTestServices(t)

	err := e.run("", "search", "reentrancy attack")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	assert.Contains(t, e.stderr.String(), "vulnsearch config set-key")
	assert.Empty(t, e.built)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	assert.Equal(t, "äöü...", truncate("äöüßx", 3))
}
