// Package connectors holds clients for external design-file services.
// Each connector owns its HTTP surface, rate limiting, and error
// mapping, and exposes the driven ports the core services consume.
package connectors
