// Package metrics holds the Prometheus collectors for HTTP traffic and
// registration/authentication outcomes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "campusauth"

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics groups the collectors. A nil *Metrics records nothing.
type Metrics struct {
	requestTotal    *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	registrations   *prometheus.CounterVec
	authentications *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. Collectors that are
// already registered are reused.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "registrations_total",
			Help:      "Registration attempts by account kind and outcome",
		}, []string{"kind", "outcome"}),
		authentications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "authentications_total",
			Help:      "Authentication attempts by outcome",
		}, []string{"outcome"}),
	}

	m.requestTotal = registerCounterVec(reg, m.requestTotal)
	m.requestLatency = registerHistogramVec(reg, m.requestLatency)
	m.registrations = registerCounterVec(reg, m.registrations)
	m.authentications = registerCounterVec(reg, m.authentications)
	return m
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}

func registerHistogramVec(reg prometheus.Registerer, h *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
	}
	return h
}

// ObserveRequest records one handled HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	m.requestTotal.With(labels).Inc()
	m.requestLatency.With(labels).Observe(duration.Seconds())
}

// RecordRegistration counts one registration attempt
func (m *Metrics) RecordRegistration(kind, outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(kind, outcome).Inc()
}

// RecordAuthentication counts one authentication attempt
func (m *Metrics) RecordAuthentication(outcome string) {
	if m == nil {
		return
	}
	m.authentications.WithLabelValues(outcome).Inc()
}
