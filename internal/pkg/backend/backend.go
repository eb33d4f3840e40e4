// Package backend is the transport client for the remote REST backend that
// owns departments and employees.
package backend

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
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/orgdesk/internal/pkg/goerror"
	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	headerContentType   = "Content-Type"
	headerCorrelationID = "X-Correlation-ID"
	contentTypeJSON     = "application/json"

	statusTextNetwork = "Internal server error"
	messageNetwork    = "Unable to fetch data"
)

var (
	// ErrBaseURLRequired is returned by New when Config.BaseURL is empty or not absolute.
	ErrBaseURLRequired = errors.New("backend: absolute base url is required")
	// ErrUnexpectedBody is returned by repositories when a 2xx body has the wrong shape.
	ErrUnexpectedBody = errors.New("backend: unexpected response body")
)

// Config configures Client.
type Config struct {
	// BaseURL is the scheme and host of the backend, e.g. http://localhost:3000.
	BaseURL string
	// Timeout bounds a single attempt. Zero means 10 seconds.
	Timeout time.Duration
	// MaxRetries is how many times a safe request is retried.
	MaxRetries uint64
	// RetryBase is the first backoff delay. Zero means 100 milliseconds.
	RetryBase time.Duration
	// Transport overrides the underlying round tripper, mostly for tests.
	Transport http.RoundTripper
}

// Request describes one call to the backend.
type Request struct {
	Method string
	// Path is joined to Config.BaseURL. It may carry a query string.
	Path    string
	Headers map[string]string
	// ContentType wins over a Content-Type entry in Headers.
	ContentType string
	// Body is JSON encoded when not nil.
	Body any
}

// Result is the normalised outcome of a backend call. It is never an error:
// network failures are reported as status 500.
type Result struct {
	Status     int
	StatusText string
	// Data is the decoded JSON body, an empty object when the body was not
	// JSON, or nil on network failure.
	Data    any
	Message string
}

// OK reports whether the backend answered with a 2xx status.
func (r Result) OK() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusMultipleChoices
}

// Errors returns the string entries of data.errors, if any.
func (r Result) Errors() []string {
	obj, ok := r.Data.(map[string]any)
	if !ok {
		return nil
	}

	list, ok := obj["errors"].([]any)
	if !ok {
		return nil
	}

	msgs := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			msgs = append(msgs, s)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return msgs
}

// Client calls the backend.
type Client struct {
	base       *url.URL
	http       *http.Client
	maxRetries uint64
	retryBase  time.Duration
}

// New constructs a Client.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || !base.IsAbs() || base.Host == "" {
		return nil, ErrBaseURLRequired
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 100 * time.Millisecond
	}
	if cfg.Transport == nil {
		cfg.Transport = http.DefaultTransport
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(cfg.Transport),
		},
		maxRetries: cfg.MaxRetries,
		retryBase:  cfg.RetryBase,
	}, nil
}

// Do sends req and normalises the response.
func (c *Client) Do(ctx context.Context, req Request) Result {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	var body []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return networkFailure(ctx, method, req.Path, err)
		}
		body = b
	}

	var res Result
	b := retry.WithCappedDuration(2*time.Second, retry.NewExponential(c.retryBase))
	if isSafe(method) {
		b = retry.WithMaxRetries(c.maxRetries, b)
	} else {
		b = retry.WithMaxRetries(0, b)
	}

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		out, err := c.send(ctx, method, req, body)
		if err != nil {
			res = Result{}
			return retry.RetryableError(err)
		}

		res = out
		if isRetryableStatus(out.Status) {
			return retry.RetryableError(fmt.Errorf("backend: %s %s answered %d", method, req.Path, out.Status))
		}
		return nil
	})
	if err != nil && res.Status == 0 {
		return networkFailure(ctx, method, req.Path, err)
	}

	return res
}

func (c *Client) send(ctx context.Context, method string, req Request, body []byte) (Result, error) {
	target := strings.TrimSuffix(c.base.String(), "/") + "/" + strings.TrimPrefix(req.Path, "/")

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	hreq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return Result{}, err
	}

	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}
	if req.ContentType != "" {
		hreq.Header.Set(headerContentType, req.ContentType)
	}
	if body != nil && hreq.Header.Get(headerContentType) == "" {
		hreq.Header.Set(headerContentType, contentTypeJSON)
	}
	if cID := instrument.GetCorrelationID(ctx); cID != "" {
		hreq.Header.Set(headerCorrelationID, cID)
	}

	resp, err := c.http.Do(hreq)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	return normalise(resp.StatusCode, resp.Status, raw), nil
}

func normalise(status int, statusLine string, raw []byte) Result {
	statusText := strings.TrimSpace(strings.TrimPrefix(statusLine, strconv.Itoa(status)))
	if statusText == "" {
		statusText = http.StatusText(status)
	}

	var data any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil || dec.More() {
		data = map[string]any{}
	}

	message := fmt.Sprintf("HTTP %d: %s", status, statusText)
	if obj, ok := data.(map[string]any); ok {
		if m, ok := obj["message"].(string); ok && m != "" {
			message = m
		}
	}

	return Result{Status: status, StatusText: statusText, Data: data, Message: message}
}

func networkFailure(ctx context.Context, method, path string, err error) Result {
	slog.ErrorContext(ctx, "backend: request failed", "method", method, "path", path, "error", err)

	msg := err.Error()
	if msg == "" {
		msg = messageNetwork
	}

	return Result{
		Status:     http.StatusInternalServerError,
		StatusText: statusTextNetwork,
		Data:       nil,
		Message:    msg,
	}
}

func isSafe(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// StatusError is a non-2xx backend answer.
type StatusError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

// Err returns a *StatusError when r is not OK, nil otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &StatusError{Status: r.Status, Message: r.Message, Errors: r.Errors()}
}

// ToError converts a repository error into the error returned to the caller.
//
// The user-facing message is always fallback. Messages listed by the backend
// in data.errors are relayed; otherwise fallback is the only message.
func ToError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	var se *StatusError
	if errors.As(err, &se) {
		msgs := se.Errors
		if len(msgs) == 0 {
			msgs = []string{fallback}
		}
		return goerror.NewBackend(se.Status, fallback, msgs)
	}

	return goerror.NewBackend(http.StatusBadGateway, fallback, []string{fallback})
}
