package auth

import (
	"context"
	"fmt"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// Ensure ConfigTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ConfigTokenProvider)(nil)

// ConfigTokenProvider reads the token from the config store on every
// call. Combined with the config watcher this gives serve mode token
// hot-reload.
type ConfigTokenProvider struct {
	store driven.ConfigStore
}

// NewConfigTokenProvider creates a provider backed by the config store.
func NewConfigTokenProvider(store driven.ConfigStore) *ConfigTokenProvider {
	return &ConfigTokenProvider{store: store}
}

// GetToken returns the stored token.
func (p *ConfigTokenProvider) GetToken(_ context.Context) (string, error) {
	token := p.store.GetString(ConfigTokenKey)
	if token == "" {
		return "", fmt.Errorf("%w: %s not set", domain.ErrAuthRequired, ConfigTokenKey)
	}
	return token, nil
}

// Method returns AuthMethodConfig.
func (p *ConfigTokenProvider) Method() domain.AuthMethod {
	return domain.AuthMethodConfig
}

// IsAuthenticated returns true if a token is stored.
func (p *ConfigTokenProvider) IsAuthenticated() bool {
	return p.store.GetString(ConfigTokenKey) != ""
}
