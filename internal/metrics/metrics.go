// Package metrics exposes probing and alerting counters in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamed0406/netmonitor/internal/domain"
)

// Alert outcomes recorded by the notifier gate.
const (
	AlertSent       = "sent"
	AlertSuppressed = "suppressed"
	AlertFailed     = "failed"
)

// Metrics groups the collectors used by the runner and the gate.
// All methods are safe on a nil receiver so callers can run without metrics.
type Metrics struct {
	registry *prometheus.Registry

	probeAttempts *prometheus.CounterVec
	hostState     *prometheus.GaugeVec
	hostLatency   *prometheus.GaugeVec
	cycles        prometheus.Counter
	cycleDuration prometheus.Histogram
	alerts        *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		probeAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmonitor_probe_attempts_total",
				Help: "ICMP echo attempts by result.",
			},
			[]string{"result"},
		),
		hostState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "netmonitor_host_reachable",
				Help: "1 if the host was reachable in the last pass, 0 if unreachable.",
			},
			[]string{"ip", "abbrev"},
		),
		hostLatency: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "netmonitor_host_latency_ms",
				Help: "Average ICMP round-trip time of the last pass in milliseconds.",
			},
			[]string{"ip", "abbrev"},
		),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "netmonitor_cycles_total",
			Help: "Completed probing cycles.",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "netmonitor_cycle_duration_seconds",
			Help:    "Wall time of a probing cycle, excluding the pause after it.",
			Buckets: []float64{1, 5, 10, 15, 20, 30, 45, 60, 120},
		}),
		alerts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmonitor_alerts_total",
				Help: "Unreachable alerts by outcome.",
			},
			[]string{"outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netmonitor_http_requests_total",
				Help: "Status API requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "netmonitor_http_request_duration_seconds",
				Help:    "Status API request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	m.registry.MustRegister(
		m.probeAttempts,
		m.hostState,
		m.hostLatency,
		m.cycles,
		m.cycleDuration,
		m.alerts,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSample(s domain.Sample) {
	if m == nil {
		return
	}
	result := "no_reply"
	if s.OK {
		result = "reply"
	}
	m.probeAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveStatus(h domain.Host, st domain.HostStatus) {
	if m == nil {
		return
	}
	switch st.Availability {
	case domain.Reachable:
		m.hostState.WithLabelValues(h.IP, h.Abbrev).Set(1)
	case domain.Unreachable:
		m.hostState.WithLabelValues(h.IP, h.Abbrev).Set(0)
	}
	if st.AvgLatencyMS != nil {
		m.hostLatency.WithLabelValues(h.IP, h.Abbrev).Set(*st.AvgLatencyMS)
	} else {
		m.hostLatency.DeleteLabelValues(h.IP, h.Abbrev)
	}
}

func (m *Metrics) ObserveCycle(d time.Duration) {
	if m == nil {
		return
	}
	m.cycles.Inc()
	m.cycleDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveAlert(outcome string) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one status API request. route is the router pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
