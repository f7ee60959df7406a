package auth

import (
	"context"
	"fmt"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider holds a fixed token. Used by tests and by flows
// where the token is supplied directly.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for a fixed token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// GetToken returns the fixed token.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("%w: empty static token", domain.ErrAuthRequired)
	}
	return p.token, nil
}

// Method returns AuthMethodStatic.
func (p *StaticTokenProvider) Method() domain.AuthMethod {
	return domain.AuthMethodStatic
}

// IsAuthenticated returns true if the token is non-empty.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}
