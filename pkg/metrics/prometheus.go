package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arnavshah/staffing-api-go/pkg/models"
)

// Prometheus implements Recorder with Prometheus collectors.
type Prometheus struct {
	solves     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	nodes      prometheus.Histogram
	backtracks prometheus.Counter
	shortfalls prometheus.Counter
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus registers the solver collectors on reg under namespace.
//
// A nil reg uses prometheus.DefaultRegisterer; an empty namespace uses "scheduler".
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "scheduler"
	}

	p := &Prometheus{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "runs_total",
			Help:      "Scheduling runs by outcome (scheduled, infeasible, budget_exceeded).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Wall time of scheduling runs in seconds by outcome.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms .. ~16s
		}, []string{"outcome"}),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "search_nodes",
			Help:      "Search nodes visited per run.",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 7),
		}),
		backtracks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "solver",
			Name:      "backtracks_total",
			Help:      "Assignments undone during search.",
		}),
		shortfalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "balancer",
			Name:      "shortfalls_total",
			Help:      "Employees left below their weekly minimum hours.",
		}),
	}

	for _, c := range []prometheus.Collector{p.solves, p.duration, p.nodes, p.backtracks, p.shortfalls} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ObserveSolve records the run under its outcome label
func (p *Prometheus) ObserveSolve(outcome string, elapsed time.Duration, stats models.SolveStats) {
	p.solves.WithLabelValues(outcome).Inc()
	p.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	p.nodes.Observe(float64(stats.Nodes))
	p.backtracks.Add(float64(stats.Backtracks))
}

// ObserveShortfalls adds n to the shortfall counter
func (p *Prometheus) ObserveShortfalls(n int) {
	if n > 0 {
		p.shortfalls.Add(float64(n))
	}
}

// Handler exposes the gatherer in the Prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
