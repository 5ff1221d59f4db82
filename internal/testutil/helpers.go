package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/airworthy/adcheck/internal/api"
	"github.com/airworthy/adcheck/internal/rules"
	"github.com/airworthy/adcheck/internal/store"
)

// NewTestServer creates a test server with in-memory store for testing.
func NewTestServer(t *testing.T, env, adminKey string) (*api.Server, *store.MemoryStore) {
	t.Helper()
	memStore := store.NewMemoryStore()
	server := api.NewServer(memStore, env, adminKey, zerolog.Nop())
	return server, memStore
}

// HTTPRequest is a helper for making test HTTP requests.
type HTTPRequest struct {
	Method  string
	Path    string
	Body    string
	Headers map[string]string
}

// Do executes the HTTP request and returns the response recorder.
func (r *HTTPRequest) Do(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if r.Body != "" {
		body = bytes.NewBufferString(r.Body)
	}
	req := httptest.NewRequest(r.Method, r.Path, body)
	if r.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// SeedDirectives populates the store with directives and rebuilds the snapshot.
func SeedDirectives(ctx context.Context, srv *api.Server, st store.Store, directives []rules.Directive) error {
	for _, d := range directives {
		if err := st.PutDirective(ctx, d); err != nil {
			return err
		}
	}
	return srv.RebuildSnapshot(ctx)
}
