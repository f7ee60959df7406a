package domain

import "time"

// ImageBlob is a downloaded image as held by the persistent byte cache.
// Raw bytes are stored rather than the encoded data URI so the inline
// threshold decision stays with the byte store, not the cache.
type ImageBlob struct {
	Data        []byte
	ContentType string
	StoredAt    time.Time
}
