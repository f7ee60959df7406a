package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Authentication Errors.

	// ErrAuthRequired indicates the design service requires a token but none is configured.
	// The export pipeline degrades to demo content instead of failing.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the configured token was rejected by the design service.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Cache Errors.

	// ErrCacheClosed indicates the byte cache has been closed.
	ErrCacheClosed = errors.New("cache closed")
)
