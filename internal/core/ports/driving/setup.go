package driving

import "github.com/custodia-labs/vulnsearch/internal/core/domain"

// SetupService registers the MCP server with a host application.
type SetupService interface {
	// IsRegistered reports whether an entry named name already exists.
	IsRegistered(name string) (bool, error)

	// Register writes reg into the host configuration. An existing entry
	// is only replaced when overwrite is true.
	Register(reg domain.HostRegistration, overwrite bool) (domain.RegistrationResult, error)

	// ConfigPath returns the host configuration file path.
	ConfigPath() string
}
