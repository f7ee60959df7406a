// Package auth provides token providers for the design-file service.
// Tokens are personal-access-token style: static strings with no
// expiry or refresh.
package auth

import (
	"os"

	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// EnvVars are the environment variables consulted for a token, in
// precedence order.
var EnvVars = []string{"SLIDEVAULT_FIGMA_TOKEN", "FIGMA_TOKEN"}

// ConfigTokenKey is the config-store key holding the token.
const ConfigTokenKey = "figma.token"

// NewFromEnvironment creates the appropriate TokenProvider:
// environment variable first, then the config store, then none.
// store may be nil when no config file is available.
func NewFromEnvironment(store driven.ConfigStore) driven.TokenProvider {
	for _, name := range EnvVars {
		if os.Getenv(name) != "" {
			return NewEnvTokenProvider(name)
		}
	}
	if store != nil && store.GetString(ConfigTokenKey) != "" {
		return NewConfigTokenProvider(store)
	}
	return NewNullTokenProvider()
}
