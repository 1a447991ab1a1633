package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	decodes *prometheus.CounterVec
	saves   *prometheus.CounterVec
}

// NewMetrics registers the codec counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staticnet",
			Name:      "decode_total",
			Help:      "Document sets decoded, by completeness state.",
		}, []string{"state"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staticnet",
			Name:      "save_total",
			Help:      "Save attempts, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.decodes, m.saves)
	return m
}

func (m *Metrics) decoded(state string) {
	if m != nil {
		m.decodes.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) saved(result string) {
	if m != nil {
		m.saves.WithLabelValues(result).Inc()
	}
}
