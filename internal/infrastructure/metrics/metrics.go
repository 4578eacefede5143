package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus instruments for the service.
type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	NotificationsRecorded *prometheus.CounterVec
	EventsPublished       *prometheus.CounterVec
	EventsDropped         prometheus.Counter
	ConnectedClients      prometheus.Gauge
	ActiveCriticalFlags   prometheus.Gauge
	TicketsTotal          *prometheus.CounterVec
}

func NewCollector(serviceName string) *Collector {
	serviceName = sanitizeNamespace(serviceName)
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		NotificationsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "notifications",
			Name:      "recorded_total",
			Help:      "Total notifications persisted by type.",
		}, []string{"type"}),

		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "realtime",
			Name:      "events_published_total",
			Help:      "Total realtime events published by event name and target kind.",
		}, []string{"event", "target"}),

		EventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "realtime",
			Name:      "events_dropped_total",
			Help:      "Events dropped because a client send buffer was full. Alert if non-zero.",
		}),

		ConnectedClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "realtime",
			Name:      "connected_clients",
			Help:      "Current number of connected WebSocket clients.",
		}),

		ActiveCriticalFlags: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "active_critical_flags",
			Help:      "Current number of active critical-case flags.",
		}),

		TicketsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "support",
			Name:      "tickets_total",
			Help:      "Total support tickets created by priority.",
		}, []string{"priority"}),
	}
}

// sanitizeNamespace maps the service name onto the metric name charset.
func sanitizeNamespace(name string) string {
	out := []byte(name)
	for i, c := range out {
		valid := c == '_' || c == ':' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(i > 0 && c >= '0' && c <= '9')
		if !valid {
			out[i] = '_'
		}
	}
	return string(out)
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
