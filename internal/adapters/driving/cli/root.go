// Package cli implements the slidevault command line interface.
package cli

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/slidevault-labs/slidevault-cli/internal/adapters/driven/auth"
	memorycache "github.com/slidevault-labs/slidevault-cli/internal/adapters/driven/cache/memory"
	sqlitecache "github.com/slidevault-labs/slidevault-cli/internal/adapters/driven/cache/sqlite"
	"github.com/slidevault-labs/slidevault-cli/internal/adapters/driven/config/file"
	"github.com/slidevault-labs/slidevault-cli/internal/adapters/driven/imagefetch"
	"github.com/slidevault-labs/slidevault-cli/internal/connectors/figma"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driving"
	"github.com/slidevault-labs/slidevault-cli/internal/core/services"
	"github.com/slidevault-labs/slidevault-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

// Shared services wired by initServices for every command run.
var (
	configStore   driven.ConfigStore
	tokenProvider driven.TokenProvider
	byteCache     driven.ByteCache
	exportMetrics *services.CountingMetrics
	exportService driving.ExportService
)

var rootCmd = &cobra.Command{
	Use:   "slidevault",
	Short: "Export design nodes with resolved image fills",
	Long: `SlideVault exports nodes from design files as enriched JSON trees.

Image fills are resolved through the design service's bulk image-fill
endpoint, falling back to per-node renders when that fails, and small
images are inlined as data URIs.

Set a personal access token once:
  slidevault auth set-token

Then export nodes by FILE/NODE reference:
  slidevault export a1B2c3D4/1:2 a1B2c3D4/5:9`,
	PersistentPreRunE: initServices,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.slidevault)")
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if byteCache != nil {
			_ = byteCache.Close()
		}
	}()
	return rootCmd.Execute()
}

// initServices wires the export pipeline before any command runs.
// Wiring failures degrade rather than abort: without a config file the
// environment still provides tokens, and without a cache exports just
// re-download.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	// version and help need no services
	if cmd.Name() == "version" {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Warn("config store unavailable: %v", err)
		configStore = nil
	} else {
		configStore = store
	}

	tokenProvider = auth.NewFromEnvironment(configStore)
	byteCache = newByteCache()

	client := figma.NewClient(tokenProvider)
	fetcher := imagefetch.New(imagefetch.DefaultTimeout)
	exportMetrics = services.NewCountingMetrics()

	var fileTimeout time.Duration
	if configStore != nil {
		fileTimeout = time.Duration(configStore.GetInt("export.timeout_seconds")) * time.Second
	}

	exportService = services.NewExportService(
		client, fetcher, tokenProvider, byteCache, exportMetrics, fileTimeout)
	return nil
}

// newByteCache builds the persistent image byte cache selected by
// cache.backend: "memory" (default), "sqlite" or "off".
func newByteCache() driven.ByteCache {
	backend := "memory"
	var ttl time.Duration
	if configStore != nil {
		if b := configStore.GetString("cache.backend"); b != "" {
			backend = b
		}
		ttl = time.Duration(configStore.GetInt("cache.ttl_hours")) * time.Hour
	}

	switch backend {
	case "off":
		return nil
	case "sqlite":
		c, err := sqlitecache.NewCache(dataDir(), ttl)
		if err != nil {
			logger.Warn("sqlite image cache unavailable, falling back to memory: %v", err)
			return memorycache.NewCache(ttl)
		}
		return c
	default:
		return memorycache.NewCache(ttl)
	}
}

// dataDir is where persistent state lives. Empty means the adapter's
// own default under the home directory.
func dataDir() string {
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, "data")
}

// metricsSummary prints the session counters after an export when
// verbose logging is on.
func metricsSummary(cmd *cobra.Command) {
	if !logger.IsVerbose() || exportMetrics == nil {
		return
	}
	cmd.PrintErrf("exported %d nodes (%d missing), %d files failed\n",
		exportMetrics.NodesExported(), exportMetrics.NodesMissing(), exportMetrics.FilesFailed())
	cmd.PrintErrf("cache: %d hits, %d misses; downloaded %d bytes\n",
		exportMetrics.CacheHits(), exportMetrics.CacheMisses(), exportMetrics.BytesTotal())
}
