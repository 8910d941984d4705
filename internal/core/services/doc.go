// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search path is ToolService -> SearchAdapter -> driven.VulnerabilityAPI.
// ToolService is the only place where failures are collapsed into a
// domain.ToolResult; everything below it returns classified errors.
package services
