// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the export pipeline to function:
//
//   - DesignService: The design-file service's HTTP API (node documents,
//     bulk image fills, raster exports)
//   - ImageFetcher: Raw byte download for resolved image URLs
//   - TokenProvider: Design-service credentials
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ByteCache: Persistent second-level image byte cache. Without it,
//     every export session downloads its own bytes.
//   - ExportMetrics: Structured pipeline events. Defaults to a no-op.
//   - ConfigStore: Application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
