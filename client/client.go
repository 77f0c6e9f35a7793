package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jens1o/smashcast/apierror"
	"github.com/jens1o/smashcast/auth"
	"github.com/jens1o/smashcast/internal/metrics"
	"github.com/jens1o/smashcast/internal/platform/requestid"
)

const (
	// DefaultBaseURL is the Smashcast REST API endpoint.
	DefaultBaseURL = "https://api.smashcast.tv"
	// DefaultMediaBaseURL is the static media host serving logos and covers.
	DefaultMediaBaseURL = "https://edge.sf.hitbox.tv"

	defaultTimeout = 10 * time.Second
)

// RequestOptions carries the per-call knobs of a Request.
type RequestOptions struct {
	// Query holds additional query parameters.
	Query url.Values
	// Body is JSON-encoded and sent as the request body when non-nil.
	Body any
	// AppendAuthToken fetches a user token from the auth provider and
	// appends it as the authToken query parameter.
	AppendAuthToken bool
}

// Requester issues a single API request and decodes the JSON response into
// out. A non-2xx response or transport failure yields an apierror of kind
// Remote; callers never inspect status codes directly.
type Requester interface {
	Request(ctx context.Context, method, path string, opts RequestOptions, out any) error
}

// RawFetcher downloads raw bytes from an absolute URL, used for media assets.
type RawFetcher interface {
	FetchRaw(ctx context.Context, absoluteURL string) ([]byte, error)
}

// Client is the HTTP-backed implementation of Requester and RawFetcher.
type Client struct {
	baseURL      string
	mediaBaseURL string
	httpc        *http.Client
	tokens       auth.Provider
	log          *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithMediaBaseURL overrides the static media host.
func WithMediaBaseURL(baseURL string) Option {
	return func(c *Client) { c.mediaBaseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithAuthProvider sets the provider consulted for privileged calls.
func WithAuthProvider(provider auth.Provider) Option {
	return func(c *Client) { c.tokens = provider }
}

// WithLogger overrides the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client with the default Smashcast endpoints.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		mediaBaseURL: DefaultMediaBaseURL,
		httpc:        &http.Client{Timeout: defaultTimeout},
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MediaBaseURL returns the static media host prefix.
func (c *Client) MediaBaseURL() string {
	return c.mediaBaseURL
}

// Request issues one API call and decodes the response into out (skipped
// when out is nil).
func (c *Client) Request(ctx context.Context, method, path string, opts RequestOptions, out any) error {
	ctx = requestid.With(ctx, requestid.New())
	endpoint := endpointFamily(path)

	start := time.Now()
	err := c.do(ctx, method, path, opts, out)
	metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.log.DebugContext(ctx, "api request failed", "method", method, "path", path, "error", err)
		return err
	}

	metrics.APIRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	c.log.DebugContext(ctx, "api request done", "method", method, "path", path)
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, opts RequestOptions, out any) error {
	query := url.Values{}
	for key, values := range opts.Query {
		query[key] = values
	}

	if opts.AppendAuthToken {
		if c.tokens == nil {
			return apierror.Remote("no auth provider configured", nil)
		}
		token, err := c.tokens.UserToken(ctx)
		if err != nil {
			return apierror.Remote("failed to obtain auth token", err)
		}
		query.Set("authToken", token.String())
	}

	reqURL := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return apierror.Remote("failed to encode request body", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return apierror.Remote("failed to create request", err)
	}
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apierror.Remote("failed to execute request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return apierror.RemoteStatus(fmt.Sprintf("api returned status %d", resp.StatusCode), resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apierror.Remote("failed to decode response", err)
	}

	return nil
}

// FetchRaw downloads the bytes behind an absolute URL, typically a media
// asset on the static host.
func (c *Client) FetchRaw(ctx context.Context, absoluteURL string) ([]byte, error) {
	ctx = requestid.With(ctx, requestid.New())

	data, err := c.fetchRaw(ctx, absoluteURL)
	if err != nil {
		metrics.AssetFetchesTotal.WithLabelValues("error").Inc()
		c.log.DebugContext(ctx, "asset fetch failed", "url", absoluteURL, "error", err)
		return nil, err
	}

	metrics.AssetFetchesTotal.WithLabelValues("ok").Inc()
	c.log.DebugContext(ctx, "asset fetch done", "url", absoluteURL, "bytes", len(data))
	return data, nil
}

func (c *Client) fetchRaw(ctx context.Context, absoluteURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, absoluteURL, nil)
	if err != nil {
		return nil, apierror.Remote("failed to create request", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apierror.Remote("failed to execute request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierror.RemoteStatus(fmt.Sprintf("asset host returned status %d", resp.StatusCode), resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierror.Remote("failed to read response body", err)
	}

	return data, nil
}

// endpointFamily reduces a request path to its first segment to keep metric
// label cardinality bounded.
func endpointFamily(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
