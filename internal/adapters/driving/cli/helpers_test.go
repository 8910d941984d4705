package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/vulnsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/vulnsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/vulnsearch/internal/core/domain"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driving"
	"github.com/custodia-labs/vulnsearch/internal/core/services"
)

// stubToolService implements driving.ToolService with a canned result.
type stubToolService struct {
	result domain.ToolResult

	mu      sync.Mutex
	queries []any
}

func (s *stubToolService) ListTools() []domain.ToolDescriptor {
	return services.NewToolRegistry().ListTools()
}

func (s *stubToolService) Invoke(_ context.Context, _ string, args map[string]any) domain.ToolResult {
	s.mu.Lock()
	s.queries = append(s.queries, args[domain.ArgQuery])
	s.mu.Unlock()
	return s.result
}

// testEnv wires the commands to in-memory settings, a stub tool service
// and a host config file in a temp dir.
type testEnv struct {
	store    *memory.ConfigStore
	env      map[string]string
	tools    *stubToolService
	hostPath string
	built    []domain.APISettings

	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	e := &testEnv{
		store: memory.NewConfigStore(nil),
		env:   map[string]string{},
		tools: &stubToolService{result: domain.OkResult(&domain.SearchSummary{
			Summary:    "Found 0 unique vulnerabilities",
			TopResults: []domain.RankedVulnerability{},
		})},
		hostPath: filepath.Join(t.TempDir(), "Claude", "claude_desktop_config.json"),
		stdout:   new(bytes.Buffer),
		stderr:   new(bytes.Buffer),
	}

	settings := services.NewSettingsService(e.store)
	settings.SetEnvLookup(func(key string) (string, bool) {
		v, ok := e.env[key]
		return v, ok
	})

	SetServices(Services{
		Settings: settings,
		Setup:    services.NewSetupService(file.NewHostConfig(e.hostPath)),
		NewTools: func(s domain.APISettings) (driving.ToolService, error) {
			e.built = append(e.built, s)
			return e.tools, nil
		},
	})

	originalExe := executablePath
	executablePath = func() (string, error) { return "/opt/vulnsearch/bin/vulnsearch", nil }

	t.Cleanup(func() {
		SetServices(Services{})
		executablePath = originalExe
		searchJSON = false
		servePort = 0
		setupYes = false
		setupName = domain.DefaultServerName
		verbose = false
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	return e
}

// configure stores valid API settings.
func (e *testEnv) configure() {
	_ = e.store.Set("api.key", "sk_test_1234567890")
	_ = e.store.Set("api.url", "https://api.example.com")
}

// run executes the root command with args and the given stdin.
func (e *testEnv) run(stdin string, args ...string) error {
	return e.runContext(context.Background(), stdin, args...)
}

func (e *testEnv) runContext(ctx context.Context, stdin string, args ...string) error {
	clearContexts(rootCmd)
	e.stdout.Reset()
	e.stderr.Reset()
	rootCmd.SetOut(e.stdout)
	rootCmd.SetErr(e.stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// clearContexts drops the context cobra stored on every subcommand during a
// previous run. Cobra only inherits the root context when a command has none.
func clearContexts(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		sub.SetContext(nil) //nolint:staticcheck
		clearContexts(sub)
	}
}
