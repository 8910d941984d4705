package domain

// DefaultServerName is the key under which the MCP server is registered
// in a host configuration.
const DefaultServerName = "vulnerabilities"

// HostRegistration describes how a host should launch the MCP server.
type HostRegistration struct {
	// ServerName is the key in the host's "mcpServers" map.
	ServerName string

	// Command is the absolute path of the executable.
	Command string

	// Args are passed to Command.
	Args []string

	// Env holds extra environment variables for the server process.
	Env map[string]string
}

// RegistrationStatus describes what a registration attempt did.
type RegistrationStatus string

// Registration statuses.
const (
	// RegistrationAdded means no entry existed and one was written.
	RegistrationAdded RegistrationStatus = "added"

	// RegistrationReplaced means an existing entry was overwritten.
	RegistrationReplaced RegistrationStatus = "replaced"

	// RegistrationKept means an existing entry was left untouched.
	RegistrationKept RegistrationStatus = "kept"
)

// RegistrationResult reports the outcome of registering with a host.
type RegistrationResult struct {
	Status RegistrationStatus

	// ConfigPath is the host configuration file that was inspected.
	ConfigPath string

	// Created is true if the configuration file did not exist before.
	Created bool

	// BackupPath is set when an unreadable configuration was backed up
	// before being replaced.
	BackupPath string
}
