// Package cms provides the HTTP transport for the headless CMS REST API.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"contacts/internal/logger"
	"contacts/pkg/utils"
)

// DefaultMaxResponseBytes limits how much of a response body is read.
const DefaultMaxResponseBytes int64 = 10 * 1024 * 1024

const maxLoggedBody = 512

// Transport errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrNotFound             = errors.New("not found")
	ErrTransport            = errors.New("cms transport failure")
	ErrResponseTooLarge     = errors.New("response body exceeds limit")
)

// Client defines the interface for CMS communication.
type Client interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// Request is a single REST call relative to the base URL.
type Request struct {
	Body   any
	Query  url.Values
	Method string
	Path   string
}

// Response is a successful (2xx) CMS response.
type Response struct {
	Header     http.Header
	Body       []byte
	StatusCode int
}

// HTTPClient handles REST communication with the CMS.
type HTTPClient struct {
	httpClient *http.Client
	headers    *utils.HTTPHelper
	text       *utils.StringHelper
	logger     *logger.Logger
	baseURL    string
	maxBytes   int64
	timeout    time.Duration
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client. hc itself is never
// modified; a timeout set with WithTimeout applies to a copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = d
	}
}

// WithMaxResponseBytes caps the size of response bodies.
func WithMaxResponseBytes(n int64) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// NewHTTPClient creates a new CMS client for baseURL.
func NewHTTPClient(baseURL string, log *logger.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers:  utils.NewHTTPHelper(),
		text:     utils.NewStringHelper(),
		logger:   log,
		maxBytes: DefaultMaxResponseBytes,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// BaseURL returns the base URL requests are resolved against.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Do sends req and returns the response. Non-2xx statuses are returned as
// *APIError. Exactly one HTTP request is made per call.
func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		body    io.Reader
		headers map[string]string
	)

	if req.Body != nil {
		jsonBody, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		body = bytes.NewReader(jsonBody)
		headers = map[string]string{"Content-Type": "application/json"}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header = c.headers.BuildHeaders(headers)

	if c.logger != nil {
		c.logger.Debug("cms request", "method", req.Method, "url", target)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, req.Method, req.Path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Read one byte past the limit to detect oversized bodies.
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrTransport, err)
	}

	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("%w: %s %s: %d bytes", ErrResponseTooLarge, req.Method, req.Path, c.maxBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.logger != nil {
			c.logger.Debug("cms error response",
				"status", resp.StatusCode,
				"body", c.text.TruncateString(string(data), maxLoggedBody),
			)
		}

		return nil, newAPIError(resp.StatusCode, data)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// Envelope wraps write fields in the body shape the CMS expects.
func Envelope(fields any) map[string]any {
	return map[string]any{"data": fields}
}
