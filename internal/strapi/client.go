// Package strapi is the thin REST client for the headless CMS that owns all
// durable portal content. Each proxy handler makes exactly one call through
// it per request; there are no retries and no response caching.
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pattaya1/pattaya1_backend/internal/metrics"
)

// ErrNotConfigured is returned when STRAPI_URL is absent. Callers treat the
// whole upstream as unavailable and either 500 or fall back to mock data.
var ErrNotConfigured = errors.New("cms base url is not configured")

// Request describes one outbound CMS call.
type Request struct {
	Method   string
	Path     string     // resource fragment, e.g. "/api/forum-posts"
	Query    url.Values // appended verbatim; pagination is passed through
	Body     any        // marshaled to JSON when non-nil
	Bearer   string     // caller token; the service API token is used when empty
	Resource string     // metrics label, e.g. "forum_posts"
}

// Response carries the upstream status and raw body. The body shape is owned
// by the CMS; handlers relay it without reinterpreting.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    metrics.Recorder
}

func NewClient(baseURL, apiToken string, httpClient *http.Client, logger *slog.Logger, rec metrics.Recorder) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		apiToken:   apiToken,
		httpClient: httpClient,
		logger:     logger,
		metrics:    rec,
	}
}

// Configured reports whether a usable base URL was provided at startup.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// BuildURL joins a resource path and query onto the configured base address.
func (c *Client) BuildURL(path string, query url.Values) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}

	target, err := url.Parse(c.baseURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return "", ErrNotConfigured
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target.Path = strings.TrimSuffix(target.Path, "/") + path
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String(), nil
}

// Do performs one upstream call and returns whatever the CMS answered.
// A non-2xx status is not an error here; handlers decide how to surface it.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	target, err := c.BuildURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	switch {
	case req.Bearer != "":
		httpReq.Header.Set("Authorization", "Bearer "+req.Bearer)
	case c.apiToken != "":
		httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RecordUpstreamFailure(req.Resource)
		c.logger.Error("upstream call failed", "resource", req.Resource, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordUpstreamFailure(req.Resource)
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	c.metrics.RecordUpstreamCall(req.Resource, resp.StatusCode, time.Since(start))
	if resp.StatusCode >= 400 {
		c.logger.Warn("upstream returned error status",
			"resource", req.Resource, "status", resp.StatusCode)
	}

	return &Response{StatusCode: resp.StatusCode, Body: raw}, nil
}
