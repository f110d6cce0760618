package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/courses/123")
	require.NoError(t, err)
	resp.Body.Close()
	m.AuthEvent("login", true)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `wellnest_http_requests_total{method="GET",route="/api/courses/{id}",status="418"} 1`)
	assert.Contains(t, string(body), `wellnest_auth_events_total{event="login",outcome="success"} 1`)
}

func TestAuthEventNilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.AuthEvent("refresh", false) })
}
