// Package arr provides the HTTP plumbing shared by the Radarr and Sonarr
// clients: API key authentication, JSON bodies, status mapping and an
// optional response cache for lookup endpoints.
package arr

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
)

const (
	defaultTimeout  = 30 * time.Second
	defaultCacheTTL = 6 * time.Hour
	maxErrorBody    = 4 << 10
)

// Client talks to a single *arr instance.
type Client struct {
	service    string
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger

	cache    Cache
	cacheTTL time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithService names the service for logs and cache keys ("radarr", "sonarr").
func WithService(name string) Option {
	return func(c *Client) {
		c.service = name
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With("component", c.service)
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithCache enables caching of lookup responses. A zero ttl uses the default.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// New creates a client for the instance at hostURL.
func New(hostURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		service: "arr",
		baseURL: NormalizeHostURL(hostURL),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeHostURL strips trailing slashes and appends "/api" unless the URL
// already ends with it.
func NormalizeHostURL(hostURL string) string {
	u := strings.TrimRight(strings.TrimSpace(hostURL), "/")
	if strings.HasSuffix(u, "/api") {
		return u
	}
	return u + "/api"
}

// BaseURL returns the normalized API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Service returns the service name.
func (c *Client) Service() string { return c.service }

// Get performs a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE request. The body is optional.
func (c *Client) Delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, out)
}

// GetCached is Get served from the configured cache when possible.
// Without a cache it behaves exactly like Get.
func (c *Client) GetCached(ctx context.Context, path string, query url.Values, out any) error {
	if c.cache == nil {
		return c.Get(ctx, path, query, out)
	}

	key := c.cacheKey(path, query)
	if data, ok := c.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(data, out); err == nil {
			if c.log != nil {
				c.log.Debug("cache hit", "key", key)
			}
			return nil
		}
	}

	data, err := c.roundTrip(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := decode(data, out); err != nil {
		return err
	}

	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil && c.log != nil {
		c.log.Warn("cache set failed", "key", key, "error", err)
	}
	return nil
}

func (c *Client) cacheKey(path string, query url.Values) string {
	key := c.service + ":" + c.baseURL + path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}
	return key
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, err := c.roundTrip(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(data, out)
}

// roundTrip executes the request and returns the raw response body of a
// successful (2xx) response.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	start := time.Now()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       strings.TrimSpace(string(msg)),
		}
		if c.log != nil {
			c.log.Debug("request failed", "method", method, "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
		}
		return nil, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("request completed", "method", method, "path", path, "status", resp.StatusCode, "bytes", len(data), "duration_ms", time.Since(start).Milliseconds())
	}
	return data, nil
}

func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
