package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/toyrobot/pkg/domain"
)

// Metrics exposes command counters to Prometheus through domain.LifecycleHooks.
type Metrics struct {
	Commands *prometheus.CounterVec
	Placed   prometheus.Gauge
}

// NewMetrics creates the collectors. They are not registered until Register is called.
func NewMetrics() *Metrics {
	return &Metrics{
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toyrobot_commands_total",
				Help: "Total number of commands applied, by command kind and outcome",
			},
			[]string{"command", "outcome"},
		),
		Placed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "toyrobot_robot_placed",
				Help: "1 when the robot is on the table, 0 otherwise",
			},
		),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Commands, m.Placed} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Observe records one command.
func (m *Metrics) Observe(_ context.Context, rec *domain.CommandRecord) {
	m.Commands.WithLabelValues(string(rec.Command), string(rec.Outcome)).Inc()
	if rec.State != nil {
		m.Placed.Set(1)
	}
}

// Hooks returns the lifecycle hooks feeding these metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{OnCommand: m.Observe}
}
