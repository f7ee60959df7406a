package driven

import "context"

// ImageFetcher downloads raw bytes from a resolved image URL.
// URLs are pre-signed by the design service; no credentials are attached.
type ImageFetcher interface {
	// Fetch returns the body bytes and the response content type.
	// A non-2xx status is an error.
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}
