// Package domain defines the core business entities for Slidevault.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Node: A design-file node tree (frame, text, vector, ...)
//   - Fill: A paint applied to a node, possibly an image fill
//   - ImageKey: Tagged identifier for an image that needs bytes
//   - ExportRequest/ExportResponse: The export pipeline's surface types
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
