package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultExpiryStatus is the status the backend answers with when the
	// access cookie has expired.
	DefaultExpiryStatus = http.StatusForbidden

	maxErrorBody    = 1 << 20  // 1 MB
	maxResponseBody = 10 << 20 // 10 MB
)

// RefreshMode controls how concurrent expired requests renew the session.
type RefreshMode int

const (
	// RefreshPerRequest lets every expired request issue its own refresh
	// call. Concurrent expiries may refresh more than once.
	RefreshPerRequest RefreshMode = iota
	// RefreshShared collapses concurrent refresh calls into one in-flight
	// call whose outcome every waiter shares.
	RefreshShared
)

// Client is the arena API client. All requests carry the cookie jar's
// credentials and pass through the middleware chain.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	log          zerolog.Logger
	expiryStatus int
	refreshMode  RefreshMode
	refreshGroup singleflight.Group
	hooks        []Middleware
	handler      Handler

	jar     http.CookieJar
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client requests are sent with. The client is
// copied, so WithCookieJar and WithTimeout apply in any order without
// changing hc. A nil hc is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCookieJar sets the jar holding the session cookies.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) { c.jar = jar }
}

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request and refresh events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithExpiryStatus overrides the status that triggers a silent refresh.
func WithExpiryStatus(code int) Option {
	return func(c *Client) { c.expiryStatus = code }
}

// WithRefreshMode selects per-request or shared refresh.
func WithRefreshMode(m RefreshMode) Option {
	return func(c *Client) { c.refreshMode = m }
}

// WithMiddleware appends interception hooks. They run outside the session
// continuity hook, so they observe a replayed request as a single call.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) { c.hooks = append(c.hooks, mws...) }
}

// New creates a new API client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		log:          zerolog.Nop(),
		expiryStatus: DefaultExpiryStatus,
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.httpClient
	if c.jar != nil {
		hc.Jar = c.jar
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	if hc.Jar == nil {
		jar, _ := cookiejar.New(nil) //nolint:errcheck // never fails without options
		hc.Jar = jar
	}
	c.httpClient = &hc
	mws := append(append([]Middleware{}, c.hooks...), c.continuity, c.logRequests)
	c.handler = chain(c.send, mws...)
	return c
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Jar returns the cookie jar holding the session credentials.
func (c *Client) Jar() http.CookieJar { return c.httpClient.Jar }

// Do sends a prepared descriptor through the full middleware chain.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	return c.handler(ctx, req)
}

// send performs the network round trip for one descriptor.
func (c *Client) send(ctx context.Context, r Request) (*Response, error) {
	req, err := r.build(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return nil, &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: apiMessage(respBody), Body: respBody}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	req, err := NewRequest(method, path, body)
	if err != nil {
		return err
	}
	resp, err := c.handler(ctx, req)
	if err != nil {
		return err
	}
	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPatch, path, body, out)
}

// envelope is the backend's standard response wrapper.
type envelope[T any] struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func (e *envelope[T]) check() error {
	if e.Success != nil && !*e.Success {
		if e.Message != "" {
			return fmt.Errorf("%w: %s", ErrUnsuccessful, e.Message)
		}
		return ErrUnsuccessful
	}
	return nil
}

// getData fetches path and returns the envelope's data field.
func getData[T any](ctx context.Context, c *Client, path string) (T, error) {
	var env envelope[T]
	if err := c.get(ctx, path, &env); err != nil {
		var zero T
		return zero, err
	}
	if err := env.check(); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}
