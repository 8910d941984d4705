package driven

// HostConfigStore reads and writes an MCP host's configuration file
// (e.g. Claude Desktop's claude_desktop_config.json).
type HostConfigStore interface {
	// Load returns the parsed document. A missing file yields an empty
	// document and exists=false.
	Load() (doc map[string]any, exists bool, err error)

	// Backup copies the current file next to itself and returns the
	// backup path.
	Backup() (string, error)

	// Save writes doc, creating parent directories as needed.
	Save(doc map[string]any) error

	// Path returns the configuration file path.
	Path() string
}
