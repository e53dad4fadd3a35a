package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Instrument(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/api/tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/api/tasks/1", "/api/tasks/2", "/ok"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2),
		testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/api/tasks/{id}", "418")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/ok", "200")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.inFlight))
}

func TestMetrics_AuthFailuresAndHandler(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordAuthFailure("missing_header")
	m.RecordAuthFailure("missing_header")
	assert.Equal(t, float64(2), testutil.ToFloat64(m.authFailures.WithLabelValues("missing_header")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "genops_auth_failures_total")
	assert.NotNil(t, m.Registry())
}
