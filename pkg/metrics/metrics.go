// Package metrics exposes Prometheus metrics for live sessions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "launchpad"

// Metrics holds the application metrics on a private registry, so several
// instances (one per test, say) never collide.
type Metrics struct {
	registry *prometheus.Registry

	SessionsActive prometheus.Gauge
	SessionsTotal  prometheus.Counter
	Events         *prometheus.CounterVec
	EventErrors    *prometheus.CounterVec
	Navigations    *prometheus.CounterVec
	RenderDuration prometheus.Histogram
}

// New creates the metrics and registers them, together with the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "live_sessions",
			Help:      "Number of open live sessions",
		}),
		SessionsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "live_sessions_total",
			Help:      "Total live sessions opened",
		}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "events_total",
			Help:      "Component events handled, by event name",
		}, []string{"event"}),
		EventErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "event_errors_total",
			Help:      "Component events that returned an error, by event name",
		}, []string{"event"}),
		Navigations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "navigations_total",
			Help:      "Call-to-action navigations, by CTA",
		}, []string{"cta"}),
		RenderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "render_duration_seconds",
			Help:      "Component render duration",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
		}),
	}
}

// SessionOpened records a new live session.
func (m *Metrics) SessionOpened() {
	m.SessionsActive.Inc()
	m.SessionsTotal.Inc()
}

// SessionClosed records a closed live session.
func (m *Metrics) SessionClosed() {
	m.SessionsActive.Dec()
}

// EventHandled counts a component event.
func (m *Metrics) EventHandled(event string, err error) {
	m.Events.WithLabelValues(event).Inc()
	if err != nil {
		m.EventErrors.WithLabelValues(event).Inc()
	}
}

// Rendered observes one render.
func (m *Metrics) Rendered(d time.Duration) {
	m.RenderDuration.Observe(d.Seconds())
}

// Navigated counts a CTA navigation.
func (m *Metrics) Navigated(cta, href string) {
	m.Navigations.WithLabelValues(cta).Inc()
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
