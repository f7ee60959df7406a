package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// Ensure EnvTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvTokenProvider)(nil)

// EnvTokenProvider reads the token from an environment variable on
// every call, so a changed environment is picked up without restart.
type EnvTokenProvider struct {
	name string
}

// NewEnvTokenProvider creates a provider reading the named variable.
func NewEnvTokenProvider(name string) *EnvTokenProvider {
	return &EnvTokenProvider{name: name}
}

// GetToken returns the variable's value.
func (p *EnvTokenProvider) GetToken(_ context.Context) (string, error) {
	token := os.Getenv(p.name)
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", domain.ErrAuthRequired, p.name)
	}
	return token, nil
}

// Method returns AuthMethodEnv.
func (p *EnvTokenProvider) Method() domain.AuthMethod {
	return domain.AuthMethodEnv
}

// IsAuthenticated returns true if the variable is non-empty.
func (p *EnvTokenProvider) IsAuthenticated() bool {
	return os.Getenv(p.name) != ""
}
