package domain

import "fmt"

// NodeRef addresses one node within one design file.
type NodeRef struct {
	FileID string `json:"fileId"`
	NodeID string `json:"nodeId"`
}

// String renders the reference for log lines.
func (r NodeRef) String() string {
	return fmt.Sprintf("%s/%s", r.FileID, r.NodeID)
}

// ExportRequest is an ordered list of node references to export.
// Duplicates are allowed and each occurrence produces its own entry in
// the response.
type ExportRequest struct {
	Nodes []NodeRef `json:"nodes"`
}

// Validate checks the request is well-formed.
func (r ExportRequest) Validate() error {
	if len(r.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes requested", ErrInvalidInput)
	}
	for i, ref := range r.Nodes {
		if ref.FileID == "" || ref.NodeID == "" {
			return fmt.Errorf("%w: node %d missing fileId or nodeId", ErrInvalidInput, i)
		}
	}
	return nil
}

// ExportedNode is one successfully resolved entry of an export response.
type ExportedNode struct {
	FileID string `json:"fileId"`
	NodeID string `json:"nodeId"`

	// Node is the enriched subtree.
	Node *Node `json:"node"`

	// ImageURL is a representative image for the node: the whole-node
	// render when one was produced, otherwise the first resolved image
	// fill in the subtree. Empty when nothing resolved.
	ImageURL string `json:"imageUrl,omitempty"`
}

// ExportResponse is the pipeline's outward result. It is always
// structurally valid: partial failures surface as missing entries or
// missing image payloads, never as an error response.
type ExportResponse struct {
	Success bool           `json:"success"`
	Warning string         `json:"warning,omitempty"`
	Nodes   []ExportedNode `json:"nodes"`
	Count   int            `json:"count"`
}

// ResolutionTier identifies which fallback strategy produced entries of
// a file's image resolution map.
type ResolutionTier int

// Tiers in attempt order. Later tiers run only when the previous tier
// failed.
const (
	// TierBulkFills is the bulk image-fill lookup: one request covering
	// every image fill in the file, keyed by imageRef.
	TierBulkFills ResolutionTier = iota + 1

	// TierNodeRender rasterises the requested top-level nodes themselves.
	TierNodeRender

	// TierDescendantRender discovers descendants carrying image fills and
	// rasterises them in fixed-size batches.
	TierDescendantRender
)

// String returns the tier's log label.
func (t ResolutionTier) String() string {
	switch t {
	case TierBulkFills:
		return "bulk-fills"
	case TierNodeRender:
		return "node-render"
	case TierDescendantRender:
		return "descendant-render"
	default:
		return "unknown"
	}
}
