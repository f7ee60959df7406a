package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/slidevault-labs/slidevault-cli/internal/core/domain"
	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the Figma REST API root.
	DefaultBaseURL = "https://api.figma.com/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response body is read.
	maxErrorBody = 8 << 10
)

// Ensure Client implements the design service port.
var _ driven.DesignService = (*Client)(nil)

// Client is a Figma REST API client backed by a token provider.
type Client struct {
	baseURL       string
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter

	mu   sync.Mutex
	http *http.Client
}

// NewClient creates a Figma client with a token provider.
func NewClient(tokenProvider driven.TokenProvider) *Client {
	return NewClientWithBaseURL(tokenProvider, DefaultBaseURL)
}

// NewClientWithBaseURL creates a Figma client against a custom API
// root. Used by tests to point at a local server.
func NewClientWithBaseURL(tokenProvider driven.TokenProvider, baseURL string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
	}
}

// ensureClient initializes the HTTP client if not already done.
// This is called lazily so we can get the token when needed.
func (c *Client) ensureClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.http != nil {
		return nil
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	c.http = tc

	return nil
}

// ImageFills implements driven.DesignService. One bulk request returns
// every image-fill URL in the file keyed by imageRef; an empty map is
// a valid result for a file without image fills.
func (c *Client) ImageFills(ctx context.Context, fileID string) (map[string]string, error) {
	var out imageFillsResponse
	path := fmt.Sprintf("/files/%s/image-fills", url.PathEscape(fileID))
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Meta.Images == nil {
		return map[string]string{}, nil
	}
	return out.Meta.Images, nil
}

// RenderNodes implements driven.DesignService. Nodes the service could
// not render come back as null and are dropped from the result.
func (c *Client) RenderNodes(ctx context.Context, fileID string, nodeIDs []string, scale float64) (map[string]string, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(nodeIDs, ","))
	q.Set("format", "png")
	q.Set("scale", strconv.FormatFloat(scale, 'f', -1, 64))

	var out imagesResponse
	path := fmt.Sprintf("/images/%s", url.PathEscape(fileID))
	if err := c.getJSON(ctx, path, q, &out); err != nil {
		return nil, err
	}
	if out.Err != "" {
		return nil, fmt.Errorf("%w: %s", ErrRenderFailed, out.Err)
	}

	urls := make(map[string]string, len(out.Images))
	for id, u := range out.Images {
		if u != nil && *u != "" {
			urls[id] = *u
		}
	}
	return urls, nil
}

// Nodes implements driven.DesignService. Ids absent from (or null in)
// the response are simply missing from the returned map.
func (c *Client) Nodes(ctx context.Context, fileID string, nodeIDs []string) (map[string]*domain.Node, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(nodeIDs, ","))
	q.Set("geometry", "paths")

	var out nodesResponse
	path := fmt.Sprintf("/files/%s/nodes", url.PathEscape(fileID))
	if err := c.getJSON(ctx, path, q, &out); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, fileID)
		}
		return nil, err
	}

	nodes := make(map[string]*domain.Node, len(out.Nodes))
	for id, entry := range out.Nodes {
		if entry != nil && entry.Document != nil {
			nodes[id] = entry.Document
		}
	}
	return nodes, nil
}

// ValidateCredentials checks the configured token by fetching the
// authenticated user.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	var out struct {
		Email string `json:"email"`
	}
	if err := c.getJSON(ctx, "/me", nil, &out); err != nil {
		if IsUnauthorized(err) || IsForbidden(err) {
			return fmt.Errorf("%w: %v", domain.ErrAuthInvalid, err)
		}
		return err
	}
	return nil
}

// getJSON performs a rate-limited GET against the API and decodes the
// JSON response into v.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	if err := c.ensureClient(ctx); err != nil {
		return err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("figma request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    decodeErrorBody(data).text(),
			URL:        u,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
