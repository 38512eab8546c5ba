package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/birkaops/birka/internal/client/session"
)

type fakeProvider struct {
	mu       sync.Mutex
	token    string
	initData string
	cleared  int
}

func (p *fakeProvider) Token(context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token, nil
}

func (p *fakeProvider) InitData() string { return p.initData }

func (p *fakeProvider) SetToken(_ context.Context, t string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = t
	return nil
}

func (p *fakeProvider) Clear(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.cleared++
	return nil
}

type alertHost struct {
	session.NoHost
	mu     sync.Mutex
	alerts []string
}

func (h *alertHost) ShowAlert(msg string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerts = append(h.alerts, msg)
	return nil
}

// fastPolicy keeps the default retry set with millisecond delays.
func fastPolicy(delays *[]time.Duration) RetryPolicy {
	p := DefaultRetryPolicy
	p.Delays = []time.Duration{time.Millisecond, 2 * time.Millisecond}
	p.OnRetry = func(_ int, d time.Duration, _ string) {
		if delays != nil {
			*delays = append(*delays, d)
		}
	}
	return p
}

func newTestServer(t *testing.T, register func(r *mux.Router)) *httptest.Server {
	t.Helper()
	r := mux.NewRouter()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server, p session.Provider, host session.Host, opts ...Option) *HTTPClient {
	h := session.NewUnauthorizedHandler(p, host, nil)
	all := append([]Option{WithUnauthorizedHandler(h)}, opts...)
	return NewHTTPClient(srv.URL+"/api/v1", p, all...)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
