package runner

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK    = "ok"
	outcomePanic = "panic"
)

// Metrics holds the runner's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	unknowns prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goguide",
			Name:      "topic_runs_total",
			Help:      "Topic invocations by outcome.",
		}, []string{"topic", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "goguide",
			Name:      "topic_duration_seconds",
			Help:      "Wall-clock time spent inside a topic action.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"topic"}),
		unknowns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "goguide",
			Name:      "unknown_topic_total",
			Help:      "Requests for identifiers that are not registered.",
		}),
	}
	for _, c := range []prometheus.Collector{m.runs, m.duration, m.unknowns} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(topic, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(topic, outcome).Inc()
	m.duration.WithLabelValues(topic).Observe(d.Seconds())
}

func (m *Metrics) unknown() {
	if m == nil {
		return
	}
	m.unknowns.Inc()
}
