// Package metrics exports the oracle server's Prometheus collectors.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fortuneseal"

// Metrics groups the collectors shared by the transports and services.
type Metrics struct {
	events          *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	backupURLs      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A collector that
// is already registered is reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analytics_events_total",
			Help:      "Analytics events received, by event name.",
		}, []string{"event"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests served, by transport, method and status code.",
		}, []string{"transport", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request latency, by transport and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transport", "method"}),
		backupURLs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backup_urls_issued_total",
			Help:      "Presigned backup URLs issued, by operation.",
		}, []string{"operation"}),
	}

	targets := []struct {
		c   prometheus.Collector
		set func(prometheus.Collector)
	}{
		{m.events, func(c prometheus.Collector) { m.events = c.(*prometheus.CounterVec) }},
		{m.requests, func(c prometheus.Collector) { m.requests = c.(*prometheus.CounterVec) }},
		{m.requestDuration, func(c prometheus.Collector) { m.requestDuration = c.(*prometheus.HistogramVec) }},
		{m.backupURLs, func(c prometheus.Collector) { m.backupURLs = c.(*prometheus.CounterVec) }},
	}
	for _, t := range targets {
		if err := reg.Register(t.c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				t.set(are.ExistingCollector)
				continue
			}
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

// Noop returns Metrics registered with a private registry.
func Noop() *Metrics {
	m, _ := New(prometheus.NewRegistry())
	return m
}

func (m *Metrics) EventReceived(name string) {
	m.events.WithLabelValues(name).Inc()
}

func (m *Metrics) BackupURLIssued(operation string) {
	m.backupURLs.WithLabelValues(operation).Inc()
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(transport, method, code string, d time.Duration) {
	m.requests.WithLabelValues(transport, method, code).Inc()
	m.requestDuration.WithLabelValues(transport, method).Observe(d.Seconds())
}
