package driving

import (
	"context"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

// ExportService runs the node export and image-resolution pipeline.
type ExportService interface {
	// Export resolves every requested (fileId, nodeId) pair into an
	// enriched node tree. The response is always structurally valid:
	// per-image, per-node and per-file failures shrink the result set
	// instead of erroring. Only a malformed request returns an error.
	//
	// With no token configured, Export returns canned demo content with
	// a warning instead of calling the design service.
	Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResponse, error)
}
