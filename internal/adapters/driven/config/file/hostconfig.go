package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driven"
)

// Ensure HostConfig implements the interface.
var _ driven.HostConfigStore = (*HostConfig)(nil)

// BackupSuffix is appended to the config path when an invalid file is
// moved aside.
const BackupSuffix = ".backup"

// HostConfig is a JSON MCP host configuration file such as Claude
// Desktop's claude_desktop_config.json.
type HostConfig struct {
	filePath string
}

// NewHostConfig creates a host config store for the file at path.
func NewHostConfig(path string) *HostConfig {
	return &HostConfig{filePath: path}
}

// DefaultClaudeDesktopPath returns the Claude Desktop configuration path
// for the current platform:
//
//	macOS:   ~/Library/Application Support/Claude/claude_desktop_config.json
//	Windows: %APPDATA%\Claude\claude_desktop_config.json
//	Linux:   ~/.config/Claude/claude_desktop_config.json
func DefaultClaudeDesktopPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "Claude", "claude_desktop_config.json"), nil
}

// Path returns the configuration file path.
func (h *HostConfig) Path() string {
	return h.filePath
}

// Load reads and parses the file. A missing or empty file yields an empty
// document. Content that is not a JSON object wraps domain.ErrHostConfigInvalid.
func (h *HostConfig) Load() (map[string]any, bool, error) {
	data, err := os.ReadFile(h.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", h.filePath, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, true, nil
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", domain.ErrHostConfigInvalid, h.filePath, err)
	}
	if doc == nil {
		return nil, true, fmt.Errorf("%w: %s: not a JSON object", domain.ErrHostConfigInvalid, h.filePath)
	}
	return doc, true, nil
}

// Backup copies the current file to <path>.backup.
func (h *HostConfig) Backup() (string, error) {
	data, err := os.ReadFile(h.filePath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", h.filePath, err)
	}

	backup := h.filePath + BackupSuffix
	if err := os.WriteFile(backup, data, 0600); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backup, nil
}

// Save writes doc as indented JSON, creating parent directories.
func (h *HostConfig) Save(doc map[string]any) error {
	if doc == nil {
		return errors.New("save host config: nil document")
	}

	if err := os.MkdirAll(filepath.Dir(h.filePath), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode host config: %w", err)
	}

	if err := os.WriteFile(h.filePath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write %s: %w", h.filePath, err)
	}
	return nil
}
