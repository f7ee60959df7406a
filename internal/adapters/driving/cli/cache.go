package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	sqlitecache "github.com/slidevault-labs/slidevault-cli/internal/adapters/driven/cache/sqlite"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persistent image cache",
}

var cacheCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove expired entries from the SQLite image cache",
	RunE:  runCacheCleanup,
}

func init() {
	cacheCmd.AddCommand(cacheCleanupCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheCleanup(cmd *cobra.Command, _ []string) error {
	// Open the on-disk cache directly; the wired cache may be the
	// in-memory backend.
	cache, err := sqlitecache.NewCache(dataDir(), 0)
	if err != nil {
		return fmt.Errorf("opening image cache: %w", err)
	}
	defer cache.Close()

	deleted, err := cache.CleanupExpired(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Removed %d expired entries from %s\n", deleted, cache.Path())
	return nil
}
