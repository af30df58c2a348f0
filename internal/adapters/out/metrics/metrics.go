// Package metrics exposes lifecycle activity as Prometheus metrics.
//
// Collectors implements arbiter.Observer, so every committed, rejected and
// contended transition is counted where it is decided. The per-status
// donation gauge is refreshed by a scheduled job.
package metrics

import (
	"net/http"

	"connectfood/internal/core/application/arbiter"
	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "connectfood"

var _ arbiter.Observer = (*Collectors)(nil)

type Collectors struct {
	registry *prometheus.Registry

	committed *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	conflicts *prometheus.CounterVec
	donations *prometheus.GaugeVec
}

// New registers the lifecycle collectors, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		committed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_committed_total",
			Help:      "Lifecycle transitions written to the store.",
		}, []string{"event", "from", "to"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "Lifecycle events rejected, by rejection code.",
		}, []string{"event", "code"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cas_conflicts_total",
			Help:      "Compare-and-set attempts lost to a concurrent writer.",
		}, []string{"event"}),
		donations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "donations",
			Help:      "Donations currently in each status.",
		}, []string{"status"}),
	}

	c.registry.MustRegister(
		c.committed,
		c.rejected,
		c.conflicts,
		c.donations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collectors) TransitionCommitted(event string, from, to donation.Status) {
	c.committed.WithLabelValues(event, from.String(), to.String()).Inc()
}

func (c *Collectors) TransitionRejected(event string, code errs.Code) {
	if code == "" {
		code = "internal"
	}
	c.rejected.WithLabelValues(event, string(code)).Inc()
}

func (c *Collectors) ConflictDetected(event string) {
	c.conflicts.WithLabelValues(event).Inc()
}

// SetDonationCounts replaces the per-status gauge values.
func (c *Collectors) SetDonationCounts(counts map[donation.Status]int64) {
	for status, n := range counts {
		c.donations.WithLabelValues(status.String()).Set(float64(n))
	}
}

// RegisterNotificationStats exposes the notification dispatcher counters.
// stats is read on every scrape.
func (c *Collectors) RegisterNotificationStats(stats func() (delivered, dropped uint64)) {
	c.registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_delivered_total",
			Help:      "Lifecycle events handed to the notification sinks.",
		}, func() float64 {
			delivered, _ := stats()
			return float64(delivered)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dropped_total",
			Help:      "Lifecycle events dropped because the notification queue was full.",
		}, func() float64 {
			_, dropped := stats()
			return float64(dropped)
		}),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry is exposed for tests and for callers that add their own collectors.
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}
