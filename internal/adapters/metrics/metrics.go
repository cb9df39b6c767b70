// Package metrics exports cache activity as Prometheus metrics.
//
// A *Metrics value satisfies the recorder interfaces of the loader and
// context caches. All methods are safe on a nil receiver.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
	"go.trai.ch/zerr"
)

const namespace = "waypoint"

// Metrics holds the collectors for one process.
type Metrics struct {
	gatherer prometheus.Gatherer

	// LoaderRequests counts GetOrLoad calls. Labels: result (hit, miss).
	LoaderRequests *prometheus.CounterVec
	// LoaderFailures counts loads that failed and were dropped from the cache.
	LoaderFailures prometheus.Counter
	// ContextEvictions counts quest contexts removed by the size bound.
	ContextEvictions prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry registers the collectors on reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		LoaderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "requests_total",
			Help:      "Zone bundle requests by cache result.",
		}, []string{"result"}),
		LoaderFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loader",
			Name:      "failures_total",
			Help:      "Zone bundle loads that failed.",
		}),
		ContextEvictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "context",
			Name:      "evictions_total",
			Help:      "Quest contexts evicted by the cache bound.",
		}),
	}
}

// Hit records a request served by a cached entry.
func (m *Metrics) Hit() {
	if m == nil {
		return
	}
	m.LoaderRequests.WithLabelValues("hit").Inc()
}

// Miss records a request that started a load.
func (m *Metrics) Miss() {
	if m == nil {
		return
	}
	m.LoaderRequests.WithLabelValues("miss").Inc()
}

// Failure records a failed load.
func (m *Metrics) Failure() {
	if m == nil {
		return
	}
	m.LoaderFailures.Inc()
}

// Evicted records n evicted quest contexts.
func (m *Metrics) Evicted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ContextEvictions.Add(float64(n))
}

// WriteText writes every collected metric in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	if m == nil {
		return nil
	}

	families, err := m.gatherer.Gather()
	if err != nil {
		return zerr.Wrap(err, "failed to gather metrics")
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return zerr.Wrap(err, "failed to encode metrics")
		}
	}
	return nil
}
