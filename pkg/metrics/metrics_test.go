package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()
	r.Discarded("/rent/", ReasonBadAmount)
	r.Discarded("/rent/", ReasonBadAmount)
	r.Discarded("/rent/", ReasonInvalidDate)
	r.FetchFailed("/services/")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.discarded.WithLabelValues("/rent/", ReasonBadAmount)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.discarded.WithLabelValues("/rent/", ReasonInvalidDate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchFailures.WithLabelValues("/services/")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Discarded("/rent/", ReasonBadAmount)
		r.FetchFailed("/rent/")
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecorder_MiddlewareAndHandler(t *testing.T) {
	r := New()
	router := chi.NewRouter()
	router.Use(r.Middleware)
	router.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/7", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("/items/{id}", "418")))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "ledger_http_requests_total"))
}

func TestRecorder_MiddlewareKeepsWriterInterfaces(t *testing.T) {
	r := New()
	router := chi.NewRouter()
	router.Use(r.Middleware)
	router.Get("/stream", func(w http.ResponseWriter, _ *http.Request) {
		flusher, ok := w.(http.Flusher)
		require.True(t, ok, "wrapped writer must still flush")
		_, _ = w.Write([]byte("chunk"))
		flusher.Flush()
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream", nil))

	assert.True(t, rec.Flushed)
	assert.Equal(t, "chunk", rec.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("/stream", "200")))
}
