// Package metrics exposes Prometheus collectors for the coaching backend.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

const namespace = "coaching"

// Metrics holds the application collectors. A nil *Metrics is a valid no-op
// recorder.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	applyCommitted *prometheus.CounterVec
	applyRejected  *prometheus.CounterVec
	applyDuration  *prometheus.HistogramVec

	generations     *prometheus.CounterVec
	generationToken *prometheus.CounterVec
	generatorFailed *prometheus.CounterVec

	eventsAppended *prometheus.CounterVec
	notifyFailed   prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "path"}),
		applyCommitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "artifact",
			Name:      "apply_committed_total",
			Help:      "Artifact changes committed, by kind and source.",
		}, []string{"kind", "source"}),
		applyRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "artifact",
			Name:      "apply_rejected_total",
			Help:      "Artifact changes rejected, by kind, source and reason.",
		}, []string{"kind", "source", "reason"}),
		applyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "artifact",
			Name:      "apply_duration_seconds",
			Help:      "Duration of committed artifact changes.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"kind"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "logs_appended_total",
			Help:      "Generation logs recorded, by generation type.",
		}, []string{"type"}),
		generationToken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "tokens_total",
			Help:      "Model tokens reported by recorded generations.",
		}, []string{"type"}),
		generatorFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "generator_failures_total",
			Help:      "Generator calls that failed or returned an invalid result.",
		}, []string{"type"}),
		eventsAppended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "timeline",
			Name:      "events_appended_total",
			Help:      "Coaching events appended, by event type.",
		}, []string{"event_type"}),
		notifyFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifier",
			Name:      "publish_failures_total",
			Help:      "Artifact change notifications that could not be published.",
		}),
	}

	reg.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.applyCommitted,
		m.applyRejected,
		m.applyDuration,
		m.generations,
		m.generationToken,
		m.generatorFailed,
		m.eventsAppended,
		m.notifyFailed,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ApplyCommitted records a committed artifact change.
func (m *Metrics) ApplyCommitted(kind domain.ArtifactKind, source domain.Source, d time.Duration) {
	if m == nil {
		return
	}
	m.applyCommitted.WithLabelValues(kind.String(), source.String()).Inc()
	m.applyDuration.WithLabelValues(kind.String()).Observe(d.Seconds())
}

// ApplyRejected records an artifact change rejected before or during commit.
func (m *Metrics) ApplyRejected(kind domain.ArtifactKind, source domain.Source, reason string) {
	if m == nil {
		return
	}
	m.applyRejected.WithLabelValues(labelOrUnknown(kind.String()), labelOrUnknown(source.String()), reason).Inc()
}

// GenerationAppended records a new generation log.
func (m *Metrics) GenerationAppended(genType domain.GenerationType, tokens int) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(genType.String()).Inc()
	if tokens > 0 {
		m.generationToken.WithLabelValues(genType.String()).Add(float64(tokens))
	}
}

// GeneratorFailed records a failed generator call.
func (m *Metrics) GeneratorFailed(genType domain.GenerationType) {
	if m == nil {
		return
	}
	m.generatorFailed.WithLabelValues(genType.String()).Inc()
}

// EventAppended records a coaching event written to the timeline.
func (m *Metrics) EventAppended(eventType domain.EventType) {
	if m == nil {
		return
	}
	m.eventsAppended.WithLabelValues(eventType.String()).Inc()
}

// NotifyFailed records a failed change notification.
func (m *Metrics) NotifyFailed() {
	if m == nil {
		return
	}
	m.notifyFailed.Inc()
}

// InstrumentHandler wraps next with HTTP request metrics.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// canonicalPath collapses ids so label cardinality stays bounded.
// /api/clients/<id>/artifacts/NUTRITION_TARGETS -> /api/clients/:id/artifacts/:kind
func canonicalPath(raw string) string {
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	for i := range parts {
		if i == 0 {
			continue
		}
		switch parts[i-1] {
		case "clients", "generation-logs", "events", "programs":
			parts[i] = ":id"
		case "artifacts":
			parts[i] = ":kind"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
