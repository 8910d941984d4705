package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/vulnsearch/internal/core/domain"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driven"
	"github.com/custodia-labs/vulnsearch/internal/core/ports/driving"
	"github.com/custodia-labs/vulnsearch/internal/logger"
)

// Ensure SetupService implements the interface.
var _ driving.SetupService = (*SetupService)(nil)

// mcpServersKey is the top-level key holding server entries in host configs.
const mcpServersKey = "mcpServers"

// SetupService registers the MCP server in a host configuration file.
// Keys it does not own are preserved.
type SetupService struct {
	store driven.HostConfigStore
}

// NewSetupService creates a new setup service.
func NewSetupService(store driven.HostConfigStore) *SetupService {
	return &SetupService{store: store}
}

// ConfigPath returns the host configuration file path.
func (s *SetupService) ConfigPath() string {
	return s.store.Path()
}

// IsRegistered reports whether an entry named name exists.
// An unparsable configuration counts as not registered.
func (s *SetupService) IsRegistered(name string) (bool, error) {
	doc, _, err := s.store.Load()
	if errors.Is(err, domain.ErrHostConfigInvalid) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	servers, ok := doc[mcpServersKey].(map[string]any)
	if !ok {
		return false, nil
	}
	_, exists := servers[name]
	return exists, nil
}

// Register writes the server entry. An unparsable configuration is backed
// up and replaced by a fresh document.
func (s *SetupService) Register(reg domain.HostRegistration, overwrite bool) (domain.RegistrationResult, error) {
	result := domain.RegistrationResult{ConfigPath: s.store.Path()}

	if reg.ServerName == "" {
		reg.ServerName = domain.DefaultServerName
	}
	if reg.Command == "" {
		return result, fmt.Errorf("register %s: command is required", reg.ServerName)
	}

	doc, exists, err := s.store.Load()
	switch {
	case errors.Is(err, domain.ErrHostConfigInvalid):
		logger.Warn("Host config %s is invalid, backing it up: %v", s.store.Path(), err)
		backup, backupErr := s.store.Backup()
		if backupErr != nil {
			return result, fmt.Errorf("backup host config: %w", backupErr)
		}
		result.BackupPath = backup
		doc = map[string]any{}
	case err != nil:
		return result, fmt.Errorf("load host config: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	result.Created = !exists

	servers, ok := doc[mcpServersKey].(map[string]any)
	if !ok {
		servers = map[string]any{}
	}

	if _, found := servers[reg.ServerName]; found {
		if !overwrite {
			result.Status = domain.RegistrationKept
			return result, nil
		}
		result.Status = domain.RegistrationReplaced
	} else {
		result.Status = domain.RegistrationAdded
	}

	servers[reg.ServerName] = serverEntry(reg)
	doc[mcpServersKey] = servers

	if err := s.store.Save(doc); err != nil {
		return result, fmt.Errorf("save host config: %w", err)
	}

	logger.Info("Registered %q in %s (%s)", reg.ServerName, s.store.Path(), result.Status)
	return result, nil
}

func serverEntry(reg domain.HostRegistration) map[string]any {
	args := make([]any, len(reg.Args))
	for i, a := range reg.Args {
		args[i] = a
	}
	env := make(map[string]any, len(reg.Env))
	for k, v := range reg.Env {
		env[k] = v
	}
	return map[string]any{
		"command": reg.Command,
		"args":    args,
		"env":     env,
	}
}
