// Package api is the HTTP client for the Looking Glass analytics backend.
//
// Each resource group (timeline, probability, narratives, geospatial) is a thin
// service with one method per endpoint. Calls are plain GETs returning the
// decoded JSON body. There is no retry and no caching: every call hits the
// network, and every failure surfaces as ErrRequestFailed.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rewired-gh/lookingglass/internal/logger"
	"github.com/rewired-gh/lookingglass/internal/models"
)

// DefaultBaseURL is the backend used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// maxErrorBody caps how much of a failed response is read for the error message.
const maxErrorBody = 4096

// ErrRequestFailed is returned for any transport error, non-2xx status or
// undecodable body. It carries no structured code.
var ErrRequestFailed = errors.New("request failed")

// Client provides access to the Looking Glass API
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    *time.Duration
	userAgent  string

	Timeline    *TimelineService
	Probability *ProbabilityService
	Narratives  *NarrativesService
	Geospatial  *GeospatialService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http.Client requests are sent through. The client
// is copied, so hc itself is never modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout, overriding the timeout of any
// client given with WithHTTPClient. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a new API client rooted at baseURL (e.g. http://localhost:8000/api).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	c.httpClient = &hc

	c.Timeline = &TimelineService{client: c}
	c.Probability = &ProbabilityService{client: c}
	c.Narratives = &NarrativesService{client: c}
	c.Geospatial = &GeospatialService{client: c}
	return c
}

// BaseURL returns the URL all paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health retrieves the backend health report.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.get(ctx, "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// errorBody is the envelope the backend uses for handled errors.
type errorBody struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// get performs a GET against path with the given query and decodes the body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrRequestFailed, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.Debug("GET %s", u)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrRequestFailed, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: GET %s: status %d%s", ErrRequestFailed, path, resp.StatusCode, readErrorMessage(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: GET %s: failed to decode response: %w", ErrRequestFailed, path, err)
	}

	logger.Debug("GET %s completed in %v", path, time.Since(start))
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return ": " + body.Message
		}
		if body.Detail != "" {
			return ": " + body.Detail
		}
	}
	return ""
}
