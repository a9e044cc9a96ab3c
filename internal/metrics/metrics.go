// Package metrics exposes Prometheus collectors for the HTTP surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service collectors with the registry they are
// registered against.
type Registry struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SuggestionsMade prometheus.Counter
}

// NewRegistry constructs a registry with all service collectors registered.
func NewRegistry() *Registry {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Registry{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests processed, labelled by method, route, and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scheduler",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds, labelled by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		SuggestionsMade: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "assistant",
			Name:      "suggestions_total",
			Help:      "Scheduling suggestions returned to users.",
		}),
	}
}

// Handler serves the registered collectors in Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
