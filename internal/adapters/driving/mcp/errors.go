// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants export design nodes through the pipeline.
package mcp

import "errors"

// ErrMissingExportService is returned when the export service is not provided.
var ErrMissingExportService = errors.New("mcp: export service is required")
