// Package tmdb implements the outbound client for the upstream movie
// metadata API. The client issues single-attempt GET requests with the API
// key attached and a bounded timeout; retries and caching live elsewhere.
package tmdb

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

	"go.uber.org/zap"

	"github.com/cinebase/cinebase/pkg/logger"
	"github.com/cinebase/cinebase/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 10 * time.Second
)

// UpstreamError describes a failed upstream call: transport failure,
// timeout, or a non-2xx status.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream fetch %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("upstream fetch %s: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsUpstreamError reports whether err originated from an upstream call.
func IsUpstreamError(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// Client talks to the metadata provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

// Option customises the Client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client, primarily for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a metadata API client.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb: api key is required")
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.WithModule("tmdb"),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Get issues a single GET request to {baseURL}{path} with the API key and
// optional query parameters attached, returning the raw response document.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	if c == nil {
		return nil, errors.New("tmdb: client not initialised")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	values := url.Values{}
	for key, vals := range query {
		for _, val := range vals {
			values.Add(key, val)
		}
	}
	values.Set("api_key", c.apiKey)

	endpoint := c.baseURL + path + "?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UpstreamError{Endpoint: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, &UpstreamError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		c.log.Warn("upstream returned non-success status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &UpstreamError{Endpoint: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return nil, &UpstreamError{Endpoint: path, Err: err}
	}

	metrics.UpstreamRequests.WithLabelValues("success").Inc()
	return json.RawMessage(body), nil
}
