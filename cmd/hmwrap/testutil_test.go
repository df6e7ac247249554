package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockServer is a fake *arr instance. Routes are keyed by "METHOD /path"
// and requests without the expected API key get 401.
type mockServer struct {
	t      *testing.T
	apiKey string
	routes map[string]http.HandlerFunc
}

func newMockServer(t *testing.T, apiKey string) *mockServer {
	t.Helper()
	return &mockServer{t: t, apiKey: apiKey, routes: map[string]http.HandlerFunc{}}
}

// Handle registers a handler for a method and path under /api.
func (m *mockServer) Handle(method, path string, h http.HandlerFunc) *mockServer {
	m.routes[method+" /api"+path] = h
	return m
}

// RespondJSON registers a handler that answers with v.
func (m *mockServer) RespondJSON(method, path string, v any) *mockServer {
	return m.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(m.t, w, v)
	})
}

// Build starts the server. It is closed when the test ends.
func (m *mockServer) Build() *httptest.Server {
	m.t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != m.apiKey {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if h, ok := m.routes[r.Method+" "+r.URL.Path]; ok {
			h(w, r)
			return
		}
		assert.Failf(m.t, "unexpected request", "%s %s", r.Method, r.URL.String())
		w.WriteHeader(http.StatusNotFound)
	}))
	m.t.Cleanup(srv.Close)
	return srv
}

// respondJSON writes a JSON response with proper content-type header.
func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON response: %v", err)
	}
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

const (
	radarrKey = "radarr-test-key"
	sonarrKey = "sonarr-test-key"
)

// writeTestConfig writes a config pointing at the given servers. An empty
// URL leaves that service out. The cache is disabled.
func writeTestConfig(t *testing.T, radarrURL, sonarrURL string) string {
	t.Helper()

	var b strings.Builder
	if radarrURL != "" {
		b.WriteString("[radarr]\nurl = \"" + radarrURL + "\"\napi_key = \"" + radarrKey + "\"\n\n")
	}
	if sonarrURL != "" {
		b.WriteString("[sonarr]\nurl = \"" + sonarrURL + "\"\napi_key = \"" + sonarrKey + "\"\n\n")
	}
	b.WriteString("[cache]\nenabled = false\n\n[log]\nlevel = \"error\"\n")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

// runCLI executes the command tree with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}
