package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/slidevault-labs/slidevault-cli/internal/adapters/driven/config/file"
	"github.com/slidevault-labs/slidevault-cli/internal/adapters/driving/httpapi"
	"github.com/slidevault-labs/slidevault-cli/internal/logger"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the export pipeline as a local HTTP service",
	Long: `Start a local HTTP server exposing the export pipeline.

Endpoints:
  POST /export   run an export, body {"nodes":[{"fileId":"...","nodeId":"..."}]}
  GET  /healthz  liveness check

The config file is watched while serving, so a token added with
'slidevault auth set-token' takes effect without a restart.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (0 = serve.port from config, else 4804)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	port := servePort
	if port == 0 && configStore != nil {
		port = configStore.GetInt("serve.port")
	}
	if port == 0 {
		port = httpapi.DefaultPort
	}

	server := httpapi.NewServer(port, exportService)
	if err := server.Start(); err != nil {
		return err
	}
	cmd.Printf("export server listening on http://127.0.0.1:%d\n", server.Port())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Hot-reload config so token changes are picked up while serving.
	if configStore != nil {
		watcher, err := file.NewWatcher(configStore)
		if err != nil {
			logger.Warn("config watcher unavailable: %v", err)
		} else {
			defer watcher.Close()
			go watcher.Start(ctx)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		cmd.Printf("received %s, shutting down\n", s)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
