package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

func TestServer_handleExportNodes(t *testing.T) {
	ctx := context.Background()

	t.Run("returns exported nodes", func(t *testing.T) {
		mockExport := &mockExportService{
			resp: &domain.ExportResponse{
				Success: true,
				Nodes: []domain.ExportedNode{
					{
						FileID:   "file-a",
						NodeID:   "1:2",
						Node:     &domain.Node{ID: "1:2", Name: "Hero Frame"},
						ImageURL: "https://cdn.example.com/render.png",
					},
				},
				Count: 1,
			},
		}

		ports := &Ports{Export: mockExport}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ExportNodesInput{
			Nodes: []NodeRefInput{{FileID: "file-a", NodeID: "1:2"}},
		}
		_, output, err := server.handleExportNodes(ctx, nil, input)

		require.NoError(t, err)
		assert.True(t, output.Success)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Nodes, 1)
		assert.Equal(t, "file-a", output.Nodes[0].FileID)
		assert.Equal(t, "1:2", output.Nodes[0].NodeID)
		assert.Equal(t, "https://cdn.example.com/render.png", output.Nodes[0].ImageURL)
		assert.Contains(t, string(output.Nodes[0].Node), "Hero Frame")

		assert.Equal(t, domain.ExportRequest{
			Nodes: []domain.NodeRef{{FileID: "file-a", NodeID: "1:2"}},
		}, mockExport.lastReq)
	})

	t.Run("propagates warning", func(t *testing.T) {
		mockExport := &mockExportService{
			resp: &domain.ExportResponse{
				Success: true,
				Warning: "file file-b failed: forbidden",
				Nodes:   []domain.ExportedNode{},
				Count:   0,
			},
		}

		ports := &Ports{Export: mockExport}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ExportNodesInput{
			Nodes: []NodeRefInput{{FileID: "file-b", NodeID: "3:4"}},
		}
		_, output, err := server.handleExportNodes(ctx, nil, input)

		require.NoError(t, err)
		assert.Contains(t, output.Warning, "file-b")
	})

	t.Run("returns error on export failure", func(t *testing.T) {
		mockExport := &mockExportService{
			err: errors.New("export failed"),
		}

		ports := &Ports{Export: mockExport}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := ExportNodesInput{
			Nodes: []NodeRefInput{{FileID: "file-a", NodeID: "1:2"}},
		}
		_, _, err = server.handleExportNodes(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "export failed")
	})
}
