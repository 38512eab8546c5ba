package client

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

	"github.com/sethvargo/go-retry"

	"github.com/birkaops/birka/internal/client/session"
	"github.com/birkaops/birka/internal/logging"
)

// HTTPClient implements Client over the Birka REST API.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	session      session.Provider
	unauthorized *session.UnauthorizedHandler
	retry        RetryPolicy
	log          logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *HTTPClient) { c.retry = p }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithUnauthorizedHandler(h *session.UnauthorizedHandler) Option {
	return func(c *HTTPClient) { c.unauthorized = h }
}

// NewHTTPClient creates a client for baseURL (e.g. https://host/api/v1).
// Request paths are appended verbatim.
func NewHTTPClient(baseURL string, p session.Provider, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		session: p,
		retry:   DefaultRetryPolicy,
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.unauthorized == nil {
		c.unauthorized = session.NewUnauthorizedHandler(p, nil, c.log)
	}
	return c
}

type requestOptions struct {
	header http.Header
	query  url.Values
}

// RequestOption customises a single request.
type RequestOption func(*requestOptions)

// WithHeader sets a request header. Caller headers override the defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) { o.header.Set(key, value) }
}

// WithQuery adds query parameters.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) {
		for k, vs := range q {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

func buildOptions(opts []RequestOption) requestOptions {
	ro := requestOptions{header: http.Header{}, query: url.Values{}}
	for _, o := range opts {
		o(&ro)
	}
	return ro
}

// ApplyOptions resolves opts into the header and query they set, for
// Client implementations other than HTTPClient.
func ApplyOptions(opts ...RequestOption) (http.Header, url.Values) {
	ro := buildOptions(opts)
	return ro.header, ro.query
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, ro requestOptions, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(ro.query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + ro.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, vs := range session.AuthHeaders(ctx, c.session, c.log) {
		req.Header[k] = vs
	}
	for k, vs := range ro.header {
		req.Header[k] = vs
	}
	return req, nil
}

// roundTrip sends req and reads the whole body.
func (c *HTTPClient) roundTrip(req *http.Request) (*http.Response, []byte, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, err
	}
	return res, data, nil
}

// failure turns a non-2xx response into an *APIError, invoking the
// unauthorized handler for a 401.
func (c *HTTPClient) failure(ctx context.Context, status int, body []byte) *APIError {
	if status == http.StatusUnauthorized {
		c.unauthorized.Handle(ctx)
	}
	return newAPIError(status, body)
}

func (c *HTTPClient) transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

func (c *HTTPClient) abortedOr(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil && !errors.Is(err, ErrAborted) {
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}
	return err
}

func (c *HTTPClient) logRetry(ctx context.Context, method, path string) RetryPolicy {
	p := c.retry
	hook := p.OnRetry
	p.OnRetry = func(attempt int, delay time.Duration, reason string) {
		c.log.Warn(ctx, "retrying request", "method", method, "path", path, "attempt", attempt, "delay", delay, "reason", reason)
		if hook != nil {
			hook(attempt, delay, reason)
		}
	}
	return p
}

func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = b
	}
	ro := buildOptions(opts)

	var data []byte
	err := c.logRetry(ctx, method, path).Do(ctx, func(ctx context.Context) (string, error) {
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := c.newRequest(ctx, method, path, rd, ro, "application/json")
		if err != nil {
			return "", err
		}

		res, raw, err := c.roundTrip(req)
		if err != nil {
			return "", c.transportError(ctx, err)
		}

		if res.StatusCode >= 200 && res.StatusCode < 300 {
			data = raw
			return "", nil
		}
		if res.StatusCode != http.StatusUnauthorized && c.retry.Retryable(res.StatusCode) {
			return fmt.Sprintf("status %d", res.StatusCode), retry.RetryableError(newAPIError(res.StatusCode, raw))
		}
		return "", c.failure(ctx, res.StatusCode, raw)
	})
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return c.abortedOr(ctx, err)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) File(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Blob, error) {
	var rd io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, rd, buildOptions(opts), contentType)
	if err != nil {
		return nil, err
	}

	res, raw, err := c.roundTrip(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, c.failure(ctx, res.StatusCode, raw)
	}

	blob := &Blob{Data: raw, ContentType: res.Header.Get("Content-Type")}
	if name, ok := FilenameFromDisposition(res.Header.Get("Content-Disposition")); ok {
		blob.Filename = name
	}
	return blob, nil
}

func (c *HTTPClient) UploadForm(ctx context.Context, path string, form *Form, onProgress func(percent int), out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}

	var data []byte
	err = c.logRetry(ctx, http.MethodPost, path).Do(ctx, func(ctx context.Context) (string, error) {
		rd := newProgressReader(body, onProgress)
		req, err := c.newRequest(ctx, http.MethodPost, path, rd, requestOptions{}, contentType)
		if err != nil {
			return "", err
		}
		req.ContentLength = int64(len(body))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}

		res, raw, err := c.roundTrip(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
			}
			return "network: " + err.Error(), retry.RetryableError(fmt.Errorf("%w: %w", ErrNetwork, err))
		}

		switch {
		case res.StatusCode == http.StatusUnauthorized:
			return "", c.failure(ctx, res.StatusCode, raw)
		case res.StatusCode >= 200 && res.StatusCode < 300:
			data = raw
			return "", nil
		case c.retry.Retryable(res.StatusCode):
			return fmt.Sprintf("status %d", res.StatusCode), retry.RetryableError(newAPIError(res.StatusCode, raw))
		default:
			return "", c.failure(ctx, res.StatusCode, raw)
		}
	})
	if err != nil {
		c.log.Debug(ctx, "upload failed", "path", path, "error", err)
		return c.abortedOr(ctx, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}
	if out == nil {
		if !json.Valid(data) {
			return ErrInvalidJSON
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
