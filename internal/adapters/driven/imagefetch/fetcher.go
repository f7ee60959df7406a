// Package imagefetch downloads raw image bytes from pre-signed URLs.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

// DefaultTimeout bounds one image download.
const DefaultTimeout = 30 * time.Second

// Ensure Fetcher implements the port.
var _ driven.ImageFetcher = (*Fetcher)(nil)

// Fetcher is a plain HTTP implementation of driven.ImageFetcher.
// Resolved URLs are pre-signed by the design service, so no
// credentials are attached.
type Fetcher struct {
	client *http.Client
}

// New creates a fetcher. A timeout <= 0 selects DefaultTimeout.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// NewWithClient creates a fetcher over a caller-supplied HTTP client.
// Useful for testing.
func NewWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch implements driven.ImageFetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("image fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("image fetch: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
