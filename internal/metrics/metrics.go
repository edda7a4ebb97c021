// Package metrics provides Prometheus metrics collection for the gid service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for the gid service.
type Collector struct {
	// Identifier metrics
	IDsGenerated   *prometheus.CounterVec
	GenerateErrors *prometheus.CounterVec
	Decodes        *prometheus.CounterVec

	// Registry metrics
	RegistryWrites *prometheus.CounterVec

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates a collector with every metric registered on reg.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		IDsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gid",
				Name:      "ids_generated_total",
				Help:      "Total number of identifiers generated",
			},
			[]string{"kind"},
		),
		GenerateErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gid",
				Name:      "generate_errors_total",
				Help:      "Total number of failed identifier generations",
			},
			[]string{"kind"},
		),
		Decodes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gid",
				Name:      "decode_total",
				Help:      "Total number of decode attempts by format and result",
			},
			[]string{"format", "result"},
		),
		RegistryWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gid",
				Name:      "registry_writes_total",
				Help:      "Total number of identifier registry writes by result",
			},
			[]string{"result"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gid",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gid",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route"},
		),
	}
}

// RecordGenerate records one generation attempt for kind.
func (c *Collector) RecordGenerate(kind string, err error) {
	if err != nil {
		c.GenerateErrors.WithLabelValues(kind).Inc()
		return
	}
	c.IDsGenerated.WithLabelValues(kind).Inc()
}

// RecordDecode records one decode attempt for format.
func (c *Collector) RecordDecode(format string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.Decodes.WithLabelValues(format, result).Inc()
}

// RecordRegistryWrite records one registry write.
func (c *Collector) RecordRegistryWrite(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.RegistryWrites.WithLabelValues(result).Inc()
}
