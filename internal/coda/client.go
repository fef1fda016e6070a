package coda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Coda API endpoint. Tenants may override it
// per request, e.g. to point at an API-compatible proxy.
const DefaultBaseURL = "https://coda.io/apis/v1"

// defaultRetryAfter is used when a 429 response carries no usable
// Retry-After header.
const defaultRetryAfter = 60 * time.Second

// Client executes typed operations against the Coda API on behalf of exactly
// one tenant. It is immutable after construction; construct one per inbound
// request and never share it across tenants.
type Client struct {
	apiKey   string
	baseURL  string
	httpc    *http.Client
	observer OperationObserver
}

// OperationObserver is invoked at the start of every API call with the HTTP
// method and the API path (no base URL, no query string). It returns the
// context to execute the call under, so observers can attach trace spans,
// plus a completion callback that receives the call's error (nil on
// success).
type OperationObserver func(ctx context.Context, method, path string) (context.Context, func(err error))

// ClientOption customizes a Client at construction time.
type ClientOption func(*Client)

// WithBaseURL overrides the default API endpoint. Empty values are ignored so
// callers can pass an optional tenant override unconditionally.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client, e.g. for tests or for
// callers that need custom timeouts.
func WithHTTPClient(httpc *http.Client) ClientOption {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithObserver installs an observer around every API call. Intended for
// metrics and tracing; the observer never sees credentials or payloads.
func WithObserver(observer OperationObserver) ClientOption {
	return func(c *Client) {
		c.observer = observer
	}
}

// NewClient creates a client bound to one tenant's API key. The base URL is
// resolved once here and never re-resolved.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved API endpoint for this client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes one API call and decodes the result into out (which may be nil
// for callers that discard the body). Every operation funnels through here so
// authentication, error classification and status handling are uniform.
func (c *Client) do(ctx context.Context, method, path string, query *queryParams, body, out any) (err error) {
	// Enforced independently of the resolver layer: the client may be
	// constructed directly.
	if c.apiKey == "" {
		return &AuthenticationError{Message: "no API key configured"}
	}

	if c.observer != nil {
		var finish func(error)
		ctx, finish = c.observer(ctx, method, path)
		if finish != nil {
			defer func() { finish(err) }()
		}
	}

	endpoint := c.baseURL + path
	if query != nil {
		if encoded := query.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &AuthenticationError{Message: "API key rejected by upstream"}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	case resp.StatusCode == http.StatusNoContent:
		// 204 carries no meaningful body; never attempt to parse one.
		return nil
	}

	// 202 mutation acknowledgments and plain 200 bodies decode the same way.
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", method, path, err)
	}
	return nil
}

// list executes a GET returning the upstream listing envelope and normalizes
// it, deriving HasMore from the presence of a next-page token.
func list[T any](ctx context.Context, c *Client, path string, query *queryParams) (*ListResponse[T], error) {
	var envelope listEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.normalize(), nil
}

// parseRetryAfter interprets the Retry-After header as delay seconds. Absent
// or unparseable values fall back to the default hint.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return defaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}

// errorMessage extracts the upstream error text from a failure response.
// Malformed bodies degrade to a generic status-code message rather than
// failing the error path itself.
func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil {
			if payload.Message != "" {
				return payload.Message
			}
			if payload.Error != "" {
				return payload.Error
			}
		}
	}
	return fmt.Sprintf("API error: %d", resp.StatusCode)
}
