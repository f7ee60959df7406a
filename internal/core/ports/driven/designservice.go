package driven

import (
	"context"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

// DesignService is the design-file service's HTTP API as seen by the
// export pipeline. Implementations live in internal/connectors.
type DesignService interface {
	// ImageFills returns every image-fill URL used anywhere in the file,
	// keyed by imageRef. One request regardless of node count. An empty
	// map is a valid success: the file simply has no image fills.
	ImageFills(ctx context.Context, fileID string) (map[string]string, error)

	// RenderNodes requests rasterised PNG exports of the given nodes and
	// returns nodeID -> signed URL. Nodes the service could not render
	// map to an empty URL or are absent.
	RenderNodes(ctx context.Context, fileID string, nodeIDs []string, scale float64) (map[string]string, error)

	// Nodes fetches the full node documents (geometry, paint, text,
	// vector data) for the given ids. Ids absent from the response
	// (deleted node, no access) are simply missing from the map - only
	// a transport or auth failure of the whole request returns an error.
	Nodes(ctx context.Context, fileID string, nodeIDs []string) (map[string]*domain.Node, error)
}
