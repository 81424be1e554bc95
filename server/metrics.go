package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts login flow outcomes. Each Server owns its registry so
// multiple instances (e.g., in tests) never fight over registration.
type Metrics struct {
	registry        *prometheus.Registry
	loginsInitiated prometheus.Counter
	callbackResults *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		loginsInitiated: factory.NewCounter(prometheus.CounterOpts{
			Name: "authrelay_logins_initiated_total",
			Help: "Number of login flows initiated.",
		}),
		callbackResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "authrelay_callbacks_total",
			Help: "Number of OAuth callbacks handled, by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) LoginInitiated() {
	m.loginsInitiated.Inc()
}

func (m *Metrics) CallbackResult(outcome string) {
	m.callbackResults.WithLabelValues(outcome).Inc()
}
