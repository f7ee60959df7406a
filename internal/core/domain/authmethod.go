package domain

// AuthMethod identifies how a design-service token was supplied.
type AuthMethod string

// Supported auth methods.
const (
	// AuthMethodEnv means the token came from an environment variable.
	AuthMethodEnv AuthMethod = "env"

	// AuthMethodConfig means the token came from the config file.
	AuthMethodConfig AuthMethod = "config"

	// AuthMethodStatic means the token was supplied directly.
	AuthMethodStatic AuthMethod = "static"

	// AuthMethodNone means no token is configured.
	AuthMethodNone AuthMethod = "none"
)
