package ws

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the renderer feed instruments.
type Metrics struct {
	Clients    prometheus.Gauge
	Broadcasts prometheus.Counter
	Dropped    prometheus.Counter
	Commands   *prometheus.CounterVec
}

// NewMetrics creates the instruments and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_clients",
			Help:      "Number of connected renderer clients",
		}),
		Broadcasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_broadcasts_total",
			Help:      "Total number of snapshots broadcast",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_dropped_clients_total",
			Help:      "Clients disconnected for falling behind",
		}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_commands_total",
			Help:      "Control commands received, by action",
		}, []string{"action"}),
	}

	reg.MustRegister(
		m.Clients,
		m.Broadcasts,
		m.Dropped,
		m.Commands,
	)

	return m
}
