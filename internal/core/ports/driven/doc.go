// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - VulnerabilityAPI: The remote search backend (HTTP)
//   - ConfigStore: Application configuration (TOML)
//   - HostConfigStore: MCP host configuration (Claude Desktop JSON)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
