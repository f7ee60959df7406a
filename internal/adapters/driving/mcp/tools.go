package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

// ExportNodesInput is the input schema for the export_nodes tool.
type ExportNodesInput struct {
	Nodes []NodeRefInput `json:"nodes" jsonschema:"the design nodes to export"`
}

// NodeRefInput addresses one node within one design file.
type NodeRefInput struct {
	FileID string `json:"file_id" jsonschema:"the design file key"`
	NodeID string `json:"node_id" jsonschema:"the node id within the file, e.g. 1:2"`
}

// ExportNodesOutput is the output schema for the export_nodes tool.
type ExportNodesOutput struct {
	Success bool              `json:"success"`
	Warning string            `json:"warning,omitempty"`
	Nodes   []ExportedNodeOut `json:"nodes"`
	Count   int               `json:"count"`
}

// ExportedNodeOut represents a single exported node.
type ExportedNodeOut struct {
	FileID   string          `json:"file_id"`
	NodeID   string          `json:"node_id"`
	Node     json.RawMessage `json:"node"`
	ImageURL string          `json:"image_url,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_nodes",
		Description: "Export design nodes as enriched trees with resolved image fills",
	}, s.handleExportNodes)
}

// handleExportNodes handles the export_nodes tool invocation.
func (s *Server) handleExportNodes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportNodesInput,
) (*mcp.CallToolResult, ExportNodesOutput, error) {
	req := domain.ExportRequest{
		Nodes: make([]domain.NodeRef, len(input.Nodes)),
	}
	for i, ref := range input.Nodes {
		req.Nodes[i] = domain.NodeRef{FileID: ref.FileID, NodeID: ref.NodeID}
	}

	resp, err := s.ports.Export.Export(ctx, req)
	if err != nil {
		return nil, ExportNodesOutput{}, err
	}

	output := ExportNodesOutput{
		Success: resp.Success,
		Warning: resp.Warning,
		Nodes:   make([]ExportedNodeOut, len(resp.Nodes)),
		Count:   resp.Count,
	}

	for i := range resp.Nodes {
		tree, err := json.Marshal(resp.Nodes[i].Node)
		if err != nil {
			return nil, ExportNodesOutput{}, err
		}
		output.Nodes[i] = ExportedNodeOut{
			FileID:   resp.Nodes[i].FileID,
			NodeID:   resp.Nodes[i].NodeID,
			Node:     tree,
			ImageURL: resp.Nodes[i].ImageURL,
		}
	}

	return nil, output, nil
}
