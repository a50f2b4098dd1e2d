package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the app, registered on their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Predictions     *prometheus.CounterVec
	StoreFailures   prometheus.Counter
	WSClients       prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestCounter: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "playcall",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "playcall",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Predictions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "playcall",
				Name:      "predictions_total",
				Help:      "Predictions locked in, by play type and result",
			},
			[]string{"play_type", "result"},
		),
		StoreFailures: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: "playcall",
				Name:      "store_failures_total",
				Help:      "Predictions that could not be written to the durable slot",
			},
		),
		WSClients: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "playcall",
				Name:      "ws_clients",
				Help:      "Connected notification websocket clients",
			},
		),
	}
}
