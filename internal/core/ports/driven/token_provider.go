package driven

import (
	"context"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

// TokenProvider provides the design-service access token.
// Implementations read from the environment, the config store, or hold
// a static value; all are personal-access-token style with no refresh.
type TokenProvider interface {
	// GetToken returns the access token, or domain.ErrAuthRequired when
	// none is configured.
	GetToken(ctx context.Context) (string, error)

	// Method returns where the token came from.
	Method() domain.AuthMethod

	// IsAuthenticated returns true if a token is available. The export
	// pipeline degrades to demo content when this is false.
	IsAuthenticated() bool
}
