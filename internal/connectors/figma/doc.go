// Package figma implements the design-file service port against the
// Figma REST API. It covers the three endpoints the export pipeline
// needs: bulk image fills, raster exports, and node documents.
//
// Authentication is a bearer token obtained lazily from the configured
// TokenProvider. Requests go through a proactive rate limiter plus
// reactive Retry-After handling.
package figma
