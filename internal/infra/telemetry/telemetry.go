package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the client-side collectors for the transport and the sync
// scheduler. All collectors are registered on construction; a nil *Metrics is
// a valid no-op receiver so instrumentation points never need nil checks.
type Metrics struct {
	TransportAttempts *prometheus.CounterVec
	TransportRetries  *prometheus.CounterVec
	TransportErrors   *prometheus.CounterVec
	SyncCycles        *prometheus.CounterVec
	SyncDroppedTicks  prometheus.Counter
	CollectionSize    *prometheus.GaugeVec
}

// New registers the skywatch collectors with the supplied registerer
// (prometheus.DefaultRegisterer when nil).
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		TransportAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skywatch",
			Subsystem: "transport",
			Name:      "attempts_total",
			Help:      "Total number of request attempts, including retries, partitioned by method.",
		}, []string{"method"}),
		TransportRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skywatch",
			Subsystem: "transport",
			Name:      "retries_total",
			Help:      "Total number of retried attempts partitioned by error kind.",
		}, []string{"kind"}),
		TransportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skywatch",
			Subsystem: "transport",
			Name:      "errors_total",
			Help:      "Total number of requests that exhausted their attempts, partitioned by error kind.",
		}, []string{"kind"}),
		SyncCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "skywatch",
			Subsystem: "sync",
			Name:      "cycles_total",
			Help:      "Total number of refresh cycles partitioned by outcome.",
		}, []string{"outcome"}),
		SyncDroppedTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "skywatch",
			Subsystem: "sync",
			Name:      "dropped_ticks_total",
			Help:      "Ticks dropped because a refresh cycle was already in flight.",
		}),
		CollectionSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "skywatch",
			Subsystem: "sync",
			Name:      "collection_size",
			Help:      "Current number of entries per collection snapshot.",
		}, []string{"collection"}),
	}

	collectors := []prometheus.Collector{
		m.TransportAttempts,
		m.TransportRetries,
		m.TransportErrors,
		m.SyncCycles,
		m.SyncDroppedTicks,
		m.CollectionSize,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}

	return m, nil
}

// ObserveAttempt counts one request attempt.
func (m *Metrics) ObserveAttempt(method string) {
	if m == nil {
		return
	}
	m.TransportAttempts.WithLabelValues(method).Inc()
}

// ObserveRetry counts one retried attempt by error kind.
func (m *Metrics) ObserveRetry(kind string) {
	if m == nil {
		return
	}
	m.TransportRetries.WithLabelValues(kind).Inc()
}

// ObserveError counts one request that exhausted its attempts.
func (m *Metrics) ObserveError(kind string) {
	if m == nil {
		return
	}
	m.TransportErrors.WithLabelValues(kind).Inc()
}

// ObserveCycle counts one refresh cycle by outcome.
func (m *Metrics) ObserveCycle(outcome string) {
	if m == nil {
		return
	}
	m.SyncCycles.WithLabelValues(outcome).Inc()
}

// ObserveDroppedTick counts one tick dropped by the overlap guard.
func (m *Metrics) ObserveDroppedTick() {
	if m == nil {
		return
	}
	m.SyncDroppedTicks.Inc()
}

// ObserveCollectionSize records a collection snapshot size.
func (m *Metrics) ObserveCollectionSize(collection string, size int) {
	if m == nil {
		return
	}
	m.CollectionSize.WithLabelValues(collection).Set(float64(size))
}
