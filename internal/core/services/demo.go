package services

import "github.com/slidevault-labs/slidevault-cli/internal/core/domain"

// DemoWarning is the warning attached to demo responses.
const DemoWarning = "no design service token configured; returning demo content"

// DemoResponse builds the canned payload returned when no credential is
// configured. Every requested pair gets a placeholder node so callers
// can exercise their rendering without a token. This is a deliberate
// degrade-to-demo policy, not a failure: success stays true.
func DemoResponse(req domain.ExportRequest) *domain.ExportResponse {
	nodes := make([]domain.ExportedNode, 0, len(req.Nodes))
	for _, ref := range req.Nodes {
		nodes = append(nodes, domain.ExportedNode{
			FileID: ref.FileID,
			NodeID: ref.NodeID,
			Node:   demoNode(ref.NodeID),
		})
	}
	return &domain.ExportResponse{
		Success: true,
		Warning: DemoWarning,
		Nodes:   nodes,
		Count:   len(nodes),
	}
}

// demoNode is a minimal frame with one solid-filled rectangle.
func demoNode(nodeID string) *domain.Node {
	return &domain.Node{
		ID:      nodeID,
		Name:    "Demo slide",
		Kind:    domain.KindFrame,
		Visible: true,
		Opacity: 1,
		Box:     &domain.Rect{Width: 1920, Height: 1080},
		Frame:   &domain.FrameData{BackgroundColor: &domain.Color{R: 1, G: 1, B: 1, A: 1}},
		Children: []*domain.Node{
			{
				ID:      nodeID + ";demo-rect",
				Name:    "Placeholder",
				Kind:    domain.KindRectangle,
				Visible: true,
				Opacity: 1,
				Box:     &domain.Rect{X: 760, Y: 440, Width: 400, Height: 200},
				Fills: []*domain.Fill{
					{
						Type:    domain.PaintSolid,
						Visible: true,
						Opacity: 1,
						Color:   &domain.Color{R: 0.9, G: 0.9, B: 0.9, A: 1},
					},
				},
			},
		},
	}
}
