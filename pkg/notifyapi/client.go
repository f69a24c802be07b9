package notifyapi

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

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/notifykit/pkg/catalog"
	"github.com/dmitrymomot/notifykit/pkg/logger"
)

const (
	sendPath      = "/api/notifications/send"
	templatesPath = "/api/notifications/templates"

	// maxBodySize caps how much of a response is read.
	maxBodySize = 1 << 20
)

// Client calls the notification service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	tokens     oauth2.TokenSource
	userAgent  string
	logger     *slog.Logger
}

var _ catalog.TemplateStore = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The client is not modified;
// WithTimeout applies to a copy of it regardless of option order.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout sets the per-request timeout. Default is 30s for the built-in
// client; an injected client keeps its own timeout unless this is set.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithTokenSource authorizes every request with a bearer token from ts.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(cl *Client) {
		cl.tokens = ts
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// WithLogger sets the logger for the Client.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "notifykit/1.0",
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(baseURL string, opts ...Option) *Client {
	c, err := New(baseURL, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Send dispatches a notification. It is called once per user action.
func (c *Client) Send(ctx context.Context, req SendRequest) error {
	_, err := c.do(ctx, http.MethodPost, sendPath, nil, req)
	return err
}

// ListTemplates returns the custom templates.
func (c *Client) ListTemplates(ctx context.Context) ([]catalog.Template, error) {
	env, err := c.do(ctx, http.MethodGet, templatesPath, nil, nil)
	if err != nil {
		return nil, err
	}

	list := []catalog.Template{}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &list); err != nil {
			return nil, errors.Join(ErrInvalidResponse, err)
		}
	}
	return list, nil
}

// CreateTemplate stores a new custom template and returns it with the id the
// server assigned.
func (c *Client) CreateTemplate(ctx context.Context, t catalog.Template) (catalog.Template, error) {
	env, err := c.do(ctx, http.MethodPost, templatesPath, nil, t)
	if err != nil {
		return catalog.Template{}, err
	}
	return decodeTemplate(env, t)
}

// UpdateTemplate replaces a custom template. t.ID selects the template.
func (c *Client) UpdateTemplate(ctx context.Context, t catalog.Template) (catalog.Template, error) {
	env, err := c.do(ctx, http.MethodPut, templatesPath, nil, t)
	if err != nil {
		return catalog.Template{}, err
	}
	return decodeTemplate(env, t)
}

// DeleteTemplate removes a custom template.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, templatesPath, url.Values{"id": {id}}, nil)
	return err
}

// PingResult reports a connectivity self-test.
type PingResult struct {
	Latency       time.Duration
	TemplateCount int
}

// Ping checks that the service is reachable and the credential is accepted by
// listing templates.
func (c *Client) Ping(ctx context.Context) (PingResult, error) {
	start := time.Now()
	list, err := c.ListTemplates(ctx)
	if err != nil {
		return PingResult{}, err
	}
	return PingResult{Latency: time.Since(start), TemplateCount: len(list)}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (envelope, error) {
	reqID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, reqID)
	start := time.Now()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("notifyapi: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return envelope{}, fmt.Errorf("notifyapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return envelope{}, errors.Join(ErrMissingToken, err)
		}
		tok.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelError, "notification api request failed",
			logger.Component("notifyapi"),
			slog.String("method", method),
			slog.String("path", path),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return envelope{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return envelope{}, fmt.Errorf("%w: read body: %w", ErrRequestFailed, err)
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "notification api request",
		logger.Component("notifyapi"),
		slog.String("method", method),
		slog.String("path", path),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return envelope{}, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return envelope{}, errors.Join(ErrInvalidResponse, decodeErr)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return envelope{}, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return env, nil
}

// decodeTemplate reads the template echoed in data, falling back to the
// request when the server sends none.
func decodeTemplate(env envelope, fallback catalog.Template) (catalog.Template, error) {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fallback, nil
	}
	var t catalog.Template
	if err := json.Unmarshal(env.Data, &t); err != nil {
		return catalog.Template{}, errors.Join(ErrInvalidResponse, err)
	}
	return t, nil
}
