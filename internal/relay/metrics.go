package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics are the relay's Prometheus collectors, registered on a private
// registry so tests can build several servers.
type metrics struct {
	registry      *prometheus.Registry
	registrations prometheus.Counter
	queued        *prometheus.CounterVec
	acked         prometheus.Counter
	rejected      *prometheus.CounterVec
}

func newMetrics(queueDepth func() float64) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "registrations_total",
			Help:      "Public key registrations accepted.",
		}),
		queued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "envelopes_queued_total",
			Help:      "Envelopes queued, by kind.",
		}, []string{"kind"}),
		acked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "envelopes_acked_total",
			Help:      "Envelopes dropped after acknowledgement.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Name:      "requests_rejected_total",
			Help:      "Requests rejected, by route.",
		}, []string{"route"}),
	}
	m.registry.MustRegister(
		m.registrations,
		m.queued,
		m.acked,
		m.rejected,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "relay",
			Name:      "queue_depth",
			Help:      "Envelopes currently queued across all users.",
		}, queueDepth),
		collectors.NewGoCollector(),
	)
	return m
}
