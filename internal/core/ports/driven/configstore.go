package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type
// conversion.
type ConfigStore interface {
	// GetString retrieves a string value. Returns "" when unset.
	GetString(key string) string

	// GetInt retrieves an integer value. Returns 0 when unset.
	GetInt(key string) int

	// GetBool retrieves a boolean value. Returns false when unset.
	GetBool(key string) bool

	// Set stores a value and persists it.
	Set(key string, value any) error

	// Reload re-reads the backing store, discarding in-memory state.
	// Used by the config watcher on file change.
	Reload() error

	// Path returns the backing file path, or "" for in-memory stores.
	Path() string
}
