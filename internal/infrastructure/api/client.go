// Package api is the HTTP client for the portfolio backend.
package api

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

	"github.com/rajshekhar/folio/internal/infrastructure/logging"
	"github.com/rajshekhar/folio/internal/ports"
	folioerrors "github.com/rajshekhar/folio/pkg/errors"
)

const (
	// DefaultTimeout bounds every request.
	DefaultTimeout = 10 * time.Second
	apiPrefix      = "/api"
	maxErrorBody   = 4 << 10
)

// Options configures a Client.
type Options struct {
	// Endpoint is the backend origin; "/api" is appended.
	Endpoint  string
	Timeout   time.Duration
	Logger    ports.Logger
	Transport http.RoundTripper
}

// Client talks to the portfolio backend. It performs no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     ports.Logger
}

// New creates a Client. Every request shares one timeout and passes through
// a transport that logs failures.
func New(opts Options) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("api endpoint is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid api endpoint %q: %w", endpoint, err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	logger = logger.With("component", "api")

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		baseURL: endpoint + apiPrefix,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{next: base, logger: logger},
		},
		logger: logger,
	}, nil
}

// BaseURL returns the resolved API root, e.g. "http://localhost:8080/api".
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) getJSON(ctx context.Context, op, path string, out interface{}) error {
	body, err := c.get(ctx, op, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return folioerrors.NewTransportError(op, 0, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, folioerrors.NewTransportError(op, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	return c.do(op, req)
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return folioerrors.NewTransportError(op, 0, fmt.Errorf("marshaling request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return folioerrors.NewTransportError(op, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.do(op, req)
	return err
}

func (c *Client) do(op string, req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, folioerrors.NewTransportError(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var cause error
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			cause = errors.New(msg)
		}
		return nil, folioerrors.NewTransportError(op, resp.StatusCode, cause)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, folioerrors.NewTransportError(op, resp.StatusCode, fmt.Errorf("reading response: %w", err))
	}
	return body, nil
}

// loggingTransport records every failed exchange before handing it back to
// the caller unchanged.
type loggingTransport struct {
	next   http.RoundTripper
	logger ports.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start).Milliseconds()
	ctx := req.Context()

	switch {
	case err != nil:
		t.logger.Error(ctx, "api request failed",
			"method", req.Method, "path", req.URL.Path, "duration_ms", elapsed, "error", err)
	case resp.StatusCode >= 400:
		t.logger.Error(ctx, "api request returned error status",
			"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "duration_ms", elapsed)
	default:
		t.logger.Debug(ctx, "api request completed",
			"method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "duration_ms", elapsed)
	}
	return resp, err
}
