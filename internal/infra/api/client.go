package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Timeout tiers. Reads are cheap and retried implicitly by the caller's
// refresh cycle; mutations get more headroom.
const (
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 10 * time.Second
)

// Client issues bounded-time JSON requests against the admin API.
// Every call enforces its own deadline and returns either the raw
// response payload or a classified *Error.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a transport client for the given base URL. tokens
// may be nil, in which case requests go out unauthenticated.
func NewClient(baseURL string, tokens TokenSource, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: log,
	}
}

// Do performs one request and decodes nothing: the caller unmarshals
// the returned payload into its own type. A nil error guarantees a
// 2xx response.
func (c *Client) Do(ctx context.Context, method, path string, body any, timeout time.Duration) (json.RawMessage, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindUnknown, cause: fmt.Errorf("marshal request: %w", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, cause: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := classifyTransport(err)
		requestsTotal.WithLabelValues(method, path, "error").Inc()
		errorsTotal.WithLabelValues(apiErr.Kind.String()).Inc()
		return nil, apiErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(KindUnknown.String()).Inc()
		return nil, &Error{Kind: KindUnknown, cause: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		requestsTotal.WithLabelValues(method, path, "rejected").Inc()
		errorsTotal.WithLabelValues(KindServerRejected.String()).Inc()
		return nil, &Error{
			Kind:    KindServerRejected,
			Status:  resp.StatusCode,
			Message: rejectionDetail(resp, respBody),
		}
	}

	requestsTotal.WithLabelValues(method, path, "ok").Inc()
	requestLatency.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

	return respBody, nil
}

// Get issues a read with the short timeout tier.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, path, nil, ReadTimeout)
}

// Post issues a mutation with the long timeout tier.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, path, body, WriteTimeout)
}

// Put issues a mutation with the long timeout tier.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, path, body, WriteTimeout)
}

// Patch issues a mutation with the long timeout tier.
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPatch, path, body, WriteTimeout)
}

// Close releases pooled connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// classifyTransport maps an error from http.Client.Do onto the closed
// Kind set. Deadline expiry wins over the wrapped net error because
// the context cancels the dial as well as the response wait.
func classifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, cause: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() || errors.Is(urlErr.Err, context.DeadlineExceeded) {
			return &Error{Kind: KindTimeout, cause: err}
		}
		// Connection refused, DNS failure and friends all arrive as a
		// net.Error wrapped inside the url.Error.
		var netErr net.Error
		if errors.As(urlErr.Err, &netErr) {
			return &Error{Kind: KindNetworkUnreachable, cause: err}
		}
	}

	return &Error{Kind: KindUnknown, cause: err}
}

// rejectionDetail pulls the server's message field out of an error
// body, falling back to "<code> <reason>" when the body is not the
// expected shape.
func rejectionDetail(resp *http.Response, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
