package figma

import (
	"encoding/json"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
)

// Wire types for the Figma REST API responses the pipeline consumes.

// imageFillsResponse is GET /files/{key}/image-fills.
type imageFillsResponse struct {
	Meta struct {
		Images map[string]string `json:"images"`
	} `json:"meta"`
}

// imagesResponse is GET /images/{key}. Err is non-empty when the whole
// render request failed; individual unrenderable nodes map to null.
type imagesResponse struct {
	Err    string             `json:"err"`
	Images map[string]*string `json:"images"`
}

// nodesResponse is GET /files/{key}/nodes. Requested ids the caller
// cannot access map to null entries.
type nodesResponse struct {
	Nodes map[string]*nodeEntry `json:"nodes"`
}

type nodeEntry struct {
	Document *domain.Node `json:"document"`
}

// apiErrorBody is the error payload Figma attaches to non-2xx
// responses. Some endpoints use "err", others "message".
type apiErrorBody struct {
	Err     string `json:"err"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (b apiErrorBody) text() string {
	if b.Err != "" {
		return b.Err
	}
	return b.Message
}

// decodeErrorBody best-effort parses an error payload; a failed parse
// just yields an empty message.
func decodeErrorBody(data []byte) apiErrorBody {
	var body apiErrorBody
	_ = json.Unmarshal(data, &body)
	return body
}
