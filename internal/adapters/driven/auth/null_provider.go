package auth

import (
	"context"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// Ensure NullTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*NullTokenProvider)(nil)

// NullTokenProvider is used when no token is configured anywhere.
// The export pipeline checks IsAuthenticated and degrades to demo
// content instead of calling the design service.
type NullTokenProvider struct{}

// NewNullTokenProvider creates a provider for the no-token case.
func NewNullTokenProvider() *NullTokenProvider {
	return &NullTokenProvider{}
}

// GetToken always fails with domain.ErrAuthRequired.
func (p *NullTokenProvider) GetToken(_ context.Context) (string, error) {
	return "", domain.ErrAuthRequired
}

// Method returns AuthMethodNone.
func (p *NullTokenProvider) Method() domain.AuthMethod {
	return domain.AuthMethodNone
}

// IsAuthenticated always returns false.
func (p *NullTokenProvider) IsAuthenticated() bool {
	return false
}
