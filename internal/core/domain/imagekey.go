package domain

import "fmt"

// ImageKeyKind discriminates the three forms an ImageKey can take.
type ImageKeyKind uint8

const (
	// ImageKeyRef identifies an image by its content-addressed imageRef.
	// This is the preferred form: the ref is stable across requests and
	// reusable across nodes within a file.
	ImageKeyRef ImageKeyKind = iota + 1

	// ImageKeyNode identifies a whole rendered node raster. Used as the
	// last-resort fallback when no per-ref mapping could be built.
	ImageKeyNode

	// ImageKeyURL identifies a fill that already carries a raw URL but
	// no imageRef.
	ImageKeyURL
)

// String returns the kind's wire/log label.
func (k ImageKeyKind) String() string {
	switch k {
	case ImageKeyRef:
		return "ref"
	case ImageKeyNode:
		return "node"
	case ImageKeyURL:
		return "url"
	default:
		return "unknown"
	}
}

// ImageKey identifies "a thing that needs bytes" during an export session.
//
// Resolution and caching are always keyed by ImageKey, never by raw URL:
// the same key may resolve to different signed URLs on different calls
// while still meaning the same logical image. Key uniqueness holds only
// within one file, so any state that outlives a single file's pipeline
// must additionally be scoped by file ID.
type ImageKey struct {
	Kind  ImageKeyKind
	Value string
}

// RefKey returns the key for a content-addressed image reference.
func RefKey(imageRef string) ImageKey {
	return ImageKey{Kind: ImageKeyRef, Value: imageRef}
}

// NodeKey returns the key for a whole-node raster export.
func NodeKey(nodeID string) ImageKey {
	return ImageKey{Kind: ImageKeyNode, Value: nodeID}
}

// URLKey returns the key for a fill that carries a raw URL and no ref.
func URLKey(rawURL string) ImageKey {
	return ImageKey{Kind: ImageKeyURL, Value: rawURL}
}

// IsZero reports whether the key is the zero value.
func (k ImageKey) IsZero() bool {
	return k.Kind == 0 && k.Value == ""
}

// String renders the key for cache keys and log lines.
func (k ImageKey) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.Value)
}
