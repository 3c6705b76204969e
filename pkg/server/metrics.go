package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks server-level counters exposed on /metrics.
type Metrics struct {
	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	eventsTotal    prometheus.Counter
	framesSent     prometheus.Counter
	bytesSent      prometheus.Counter
}

var (
	sharedMetrics     *Metrics
	sharedMetricsOnce sync.Once
)

// NewMetrics returns the process-wide server metrics, registered on the
// default registry. All servers in a process share one set.
func NewMetrics() *Metrics {
	sharedMetricsOnce.Do(func() {
		sharedMetrics = NewMetricsWith(prometheus.DefaultRegisterer)
	})
	return sharedMetrics
}

// NewMetricsWith registers a fresh metrics set on the given registerer.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "filament",
			Subsystem: "server",
			Name:      "sessions_active",
			Help:      "Number of live sessions.",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "filament",
			Subsystem: "server",
			Name:      "sessions_total",
			Help:      "Total sessions opened.",
		}),
		eventsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "filament",
			Subsystem: "server",
			Name:      "events_total",
			Help:      "Total client events dispatched.",
		}),
		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "filament",
			Subsystem: "server",
			Name:      "frames_sent_total",
			Help:      "Total frames written to sockets.",
		}),
		bytesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "filament",
			Subsystem: "server",
			Name:      "bytes_sent_total",
			Help:      "Total payload bytes written to sockets.",
		}),
	}
}

// SessionOpened records a new live session.
func (m *Metrics) SessionOpened() {
	m.sessionsActive.Inc()
	m.sessionsTotal.Inc()
}

// SessionClosed records a session ending.
func (m *Metrics) SessionClosed() {
	m.sessionsActive.Dec()
}

// EventDispatched records one client event.
func (m *Metrics) EventDispatched() {
	m.eventsTotal.Inc()
}

// FrameSent records one outgoing frame of the given payload size.
func (m *Metrics) FrameSent(bytes int) {
	m.framesSent.Inc()
	m.bytesSent.Add(float64(bytes))
}
