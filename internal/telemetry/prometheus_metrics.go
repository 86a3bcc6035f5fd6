package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics implements Metrics against a dedicated registry so
// cmd/server can expose tick duration, active-entity counts, and
// command-reject reasons on /metrics without internal/sim ever importing
// prometheus itself.
type PrometheusMetrics struct {
	tickDuration    prometheus.Histogram
	activeEntities  *prometheus.GaugeVec
	commandRejected *prometheus.CounterVec
	eventsTotal     *prometheus.CounterVec
}

// NewPrometheusMetrics registers its collectors on reg and returns a
// ready-to-use Metrics implementation. reg is typically
// prometheus.NewRegistry(), kept separate from the default registry so
// tests can construct independent instances without a "duplicate metrics
// collector registration attempted" panic.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "towerdefense_tick_duration_seconds",
			Help:    "Wall-clock time spent executing one simulation tick.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
		activeEntities: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "towerdefense_active_entities",
			Help: "Current live entity count by kind (enemy, defense, projectile).",
		}, []string{"kind"}),
		commandRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "towerdefense_command_rejected_total",
			Help: "Commands rejected by precondition, by reason.",
		}, []string{"reason"}),
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "towerdefense_events_total",
			Help: "Engine events emitted, by type.",
		}, []string{"event_type"}),
	}
}

func (m *PrometheusMetrics) ObserveTickDuration(d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
}

func (m *PrometheusMetrics) SetActiveEntities(kind string, count int) {
	m.activeEntities.WithLabelValues(kind).Set(float64(count))
}

func (m *PrometheusMetrics) IncCommandRejected(reason string) {
	m.commandRejected.WithLabelValues(reason).Inc()
}

func (m *PrometheusMetrics) IncEvent(eventType string) {
	m.eventsTotal.WithLabelValues(eventType).Inc()
}
