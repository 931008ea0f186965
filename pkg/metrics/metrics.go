package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Discard reasons reported by the normalizer.
const (
	ReasonMissingField = "missing_field"
	ReasonInvalidDate  = "invalid_date"
	ReasonBadAmount    = "bad_amount"
	ReasonUndecodable  = "undecodable"
)

// Recorder owns a private registry so tests and multiple engines never collide on the default one.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	handler       http.Handler
	discarded     *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	requests      *prometheus.CounterVec
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	discarded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_discarded_entries_total",
		Help: "Ledger entries dropped during normalisation, by source and reason.",
	}, []string{"source", "reason"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_source_fetch_failures_total",
		Help: "Source fetches that degraded to an empty record set.",
	}, []string{"source"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "code"})
	registry.MustRegister(discarded, failures, requests)

	return &Recorder{
		registry:      registry,
		handler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		discarded:     discarded,
		fetchFailures: failures,
		requests:      requests,
	}
}

func (r *Recorder) Discarded(source, reason string) {
	if r == nil {
		return
	}
	r.discarded.WithLabelValues(source, reason).Inc()
}

func (r *Recorder) FetchFailed(source string) {
	if r == nil {
		return
	}
	r.fetchFailures.WithLabelValues(source).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// Middleware counts requests by chi route pattern and response code.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := req.URL.Path
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}
