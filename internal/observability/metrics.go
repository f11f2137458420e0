// Package observability holds the Prometheus collectors the service exports.
package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smokefree"

// Metrics groups the collectors shared by the HTTP layer and background workers.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	SubscriptionSyncs   *prometheus.CounterVec
	SubscriptionDropped prometheus.Counter
	ProgressComputed    *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Collectors already registered
// (e.g. by a previous instance in tests) are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		SubscriptionSyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriptions",
			Name:      "sync_total",
			Help:      "Marketing list sync attempts by outcome.",
		}, []string{"outcome"}),
		SubscriptionDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriptions",
			Name:      "sync_dropped_total",
			Help:      "Sync jobs dropped because the queue was full.",
		}),
		ProgressComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progress",
			Name:      "summaries_total",
			Help:      "Progress summaries served, by source (profile, default, demo).",
		}, []string{"source"}),
	}

	var err error
	m.HTTPRequests, err = register(reg, m.HTTPRequests)
	if err != nil {
		return nil, err
	}
	m.HTTPDuration, err = register(reg, m.HTTPDuration)
	if err != nil {
		return nil, err
	}
	m.SubscriptionSyncs, err = register(reg, m.SubscriptionSyncs)
	if err != nil {
		return nil, err
	}
	m.SubscriptionDropped, err = register(reg, m.SubscriptionDropped)
	if err != nil {
		return nil, err
	}
	m.ProgressComputed, err = register(reg, m.ProgressComputed)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
