package mcp

import (
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Export runs the node export pipeline.
	Export driving.ExportService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}
