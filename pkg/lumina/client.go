package lumina

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	commandPrefix   = "/rest/command/"
	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 10 * time.Second
	maxBodySize     = 8 << 20
)

// Transport performs one request/response exchange with a Lumina host.
type Transport interface {
	Post(ctx context.Context, path string, payload any) (*RawResponse, error)
}

// RawResponse is a successful reply. HasResult is false when the body does not
// carry a "result" key.
type RawResponse struct {
	StatusCode int
	RequestID  string
	Body       []byte
	Result     json.RawMessage
	HasResult  bool
}

// TransportError is returned for non-2xx replies and for exchanges that never
// produced a reply (StatusCode 0).
type TransportError struct {
	StatusCode int
	StatusText string
	Result     json.RawMessage
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.StatusText, e.Err)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.StatusText)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerMessage returns the server-reported message, if any.
func (e *TransportError) ServerMessage() string {
	if len(e.Result) == 0 || string(e.Result) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Result, &s); err == nil {
		return s
	}
	return string(e.Result)
}

type Option func(c *Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit limits outgoing requests to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// Client talks to the REST command interface of a Lumina host.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid lumina url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid lumina url %q: unsupported scheme %q", baseURL, u.Scheme)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    &http.Client{},
		timeout: defaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}

	return c, nil
}

// URL returns the endpoint for a command path. The path is not escaped.
func (c *Client) URL(path string) string {
	return c.baseURL + commandPrefix + path
}

// Post sends payload as the JSON argument list of the command at path.
func (c *Client) Post(ctx context.Context, path string, payload any) (*RawResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{StatusText: "rate limited", Err: err}
		}
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal arguments: %w", err)
		}
		body = bytes.NewReader(data)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path), body)
	if err != nil {
		return nil, &TransportError{StatusText: "invalid request", Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	zap.S().Named("lumina").Debugw("sending command", "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode), Err: err}
	}

	result, hasResult := unwrapEnvelope(data)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		te := &TransportError{
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
		if hasResult {
			te.Result = result
		}
		return nil, te
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
		Body:       data,
		Result:     result,
		HasResult:  hasResult,
	}, nil
}

func unwrapEnvelope(data []byte) (json.RawMessage, bool) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, false
	}
	result, ok := envelope["result"]
	return result, ok
}

func classifyNetworkError(err error) *TransportError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &TransportError{StatusText: "timeout", Err: err}
	case errors.Is(err, context.Canceled):
		return &TransportError{StatusText: "canceled", Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &TransportError{StatusText: "timeout", Err: err}
	default:
		return &TransportError{StatusText: "network error", Err: err}
	}
}
