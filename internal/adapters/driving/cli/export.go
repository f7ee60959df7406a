package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/logger"
)

var (
	exportOutput string
	exportPretty bool
)

var exportCmd = &cobra.Command{
	Use:   "export FILE/NODE [FILE/NODE...]",
	Short: "Export design nodes as enriched JSON trees",
	Long: `Export one or more nodes from design files.

Each argument is a FILE/NODE reference: the file key, a slash, then the
node id. Node ids use the service's colon form, e.g. 1:2.

Nodes from the same file are fetched together; a file that fails is
skipped while the others proceed.

Examples:
  # One node
  slidevault export a1B2c3D4/1:2

  # Several nodes across two files, written to a file
  slidevault export a1B2c3D4/1:2 a1B2c3D4/5:9 x9Y8z7W6/3:14 -o nodes.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the response to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportPretty, "pretty", false, "indent the JSON output")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errors.New("export service not configured")
	}

	req := domain.ExportRequest{Nodes: make([]domain.NodeRef, 0, len(args))}
	for _, arg := range args {
		ref, err := parseNodeArg(arg)
		if err != nil {
			return err
		}
		req.Nodes = append(req.Nodes, ref)
	}

	logger.Section("Export")
	resp, err := exportService.Export(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if resp.Warning != "" {
		cmd.PrintErrf("warning: %s\n", resp.Warning)
	}

	var data []byte
	if exportPretty {
		data, err = json.MarshalIndent(resp, "", "  ")
	} else {
		data, err = json.Marshal(resp)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		cmd.PrintErrf("wrote %d nodes to %s\n", resp.Count, exportOutput)
	} else {
		cmd.Println(string(data))
	}

	metricsSummary(cmd)
	return nil
}

// parseNodeArg splits a FILE/NODE argument at the first slash. Node ids
// contain colons, so the slash is the only safe separator.
func parseNodeArg(arg string) (domain.NodeRef, error) {
	fileID, nodeID, ok := strings.Cut(arg, "/")
	if !ok || fileID == "" || nodeID == "" {
		return domain.NodeRef{}, fmt.Errorf("invalid node reference %q, expected FILE/NODE", arg)
	}
	return domain.NodeRef{FileID: fileID, NodeID: nodeID}, nil
}
