package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
)

func TestConfigCmd_ShowNotConfigured(t *testing.T) {
	e := setupTestServices(t)

	err := e.run("", "config", "show")

	require.NoError(t, err)
	out := e.stdout.String()
	assert.Contains(t, out, "API URL:")
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "not configured")
}

func TestConfigCmd_ShowMasksKey(t *testing.T) {
	e := setupTestServices(t)
	e.configure()

	err := e.run("", "config")

	require.NoError(t, err)
	out := e.stdout.String()
	assert.Contains(t, out, "sk_test_12...")
	assert.NotContains(t, out, "sk_test_1234567890")
	assert.Contains(t, out, "https://api.example.com (file)")
	assert.Contains(t, out, "configured")
	assert.Contains(t, out, ":memory:")
}

func TestConfigCmd_ShowReportsEnvSource(t *testing.T) {
	e := setupTestServices(t)
	e.configure()
	e.env["MCP_API_URL"] = "http://localhost:8000"

	err := e.run("", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, e.stdout.String(), "http://localhost:8000 (env:MCP_API_URL)")
}

func TestConfigCmd_SetKeyFromArg(t *testing.T) {
	e := setupTestServices(t)

	err := e.run("", "config", "set-key", "sk_live_abcdefghijkl")

	require.NoError(t, err)
	assert.Equal(t, "sk_live_abcdefghijkl", e.store.GetString("api.key"))
	assert.Contains(t, e.stdout.String(), "API key sk_live_ab... saved")
	assert.NotContains(t, e.stdout.String(), "abcdefghijkl")
}

func TestConfigCmd_SetKeyFromStdin(t *testing.T) {
	e := setupTestServices(t)

	err := e.run("  sk_from_stdin_key  \n", "config", "set-key")

	require.NoError(t, err)
	assert.Equal(t, "sk_from_stdin_key", e.store.GetString("api.key"))
	assert.Contains(t, e.stdout.String(), "Enter API key:")
}

func TestConfigCmd_SetKeyRejectsInvalid(t *testing.T) {
	e := setupTestServices(t)

	err := e.run("", "config", "set-key", "pk_wrong_prefix")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAPIKey)
	assert.Empty(t, e.store.GetString("api.key"))
	assert.Contains(t, e.stderr.String(), "API keys start with sk_")
}

func TestConfigCmd_SetKeyWarnsOnEnvOverride(t *testing.T) {
	e := setupTestServices(t)
	e.env["API_KEY"] = "sk_env_key_value"

	err := e.run("", "config", "set-key", "sk_stored_key_value")

	require.NoError(t, err)
	assert.Contains(t, e.stdout.String(), "Warning: API_KEY is set in the environment")
}

func TestConfigCmd_SetURL(t *testing.T) {
	e := setupTestServices(t)

	err := e.run("", "config", "set-url", "https://api.example.com/")

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", e.store.GetString("api.url"))
	assert.Contains(t, e.stdout.String(), "API URL saved")
}

func TestConfigCmd_SetURLRejectsInvalid(t *testing.T) {
	e := setupTestServices(t)

	err := e.run("", "config", "set-url", "api.example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAPIURL)
}

func TestConfigCmd_WithoutSettingsService(t *testing.T) {
	e := setupTestServices(t)
	SetServices(Services{})

	err := e.run("", "config", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
