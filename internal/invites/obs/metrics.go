package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's collectors on a private registry. It satisfies
// service.Recorder.
type Metrics struct {
	reg *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	issued        prometheus.Counter
	accepted      prometheus.Counter
	mailFailures  prometheus.Counter
	groupsSkipped prometheus.Counter
}

// NewMetrics registers every collector, including Go runtime and process
// collectors and a build_info gauge for version.
func NewMetrics(version string) *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		issued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invites_issued_total",
			Help: "Invitations created.",
		}),
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invites_accepted_total",
			Help: "Invitations accepted and turned into accounts.",
		}),
		mailFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invites_mail_failures_total",
			Help: "Invitation emails that could not be sent.",
		}),
		groupsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "invites_groups_skipped_total",
			Help: "Group codes on accepted invitations that no longer resolved.",
		}),
	}

	buildInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "build_info",
		Help:        "Invitation service build information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
	buildInfo.Set(1)

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		buildInfo,
		m.httpInFlight, m.httpRequestsTotal, m.httpRequestDuration,
		m.issued, m.accepted, m.mailFailures, m.groupsSkipped,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) InvitationIssued()     { m.issued.Inc() }
func (m *Metrics) InvitationAccepted()   { m.accepted.Inc() }
func (m *Metrics) InvitationMailFailed() { m.mailFailures.Inc() }
func (m *Metrics) GroupsSkipped(n int)   { m.groupsSkipped.Add(float64(n)) }

// Instrument records request count, latency and in-flight requests. Requests
// are labelled by their ServeMux pattern so tokens in paths never become
// label values.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(sw.code)

		m.httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
	})
}

// statusWriter remembers the response code.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
