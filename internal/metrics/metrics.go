package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, route pattern, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// RunsStarted counts optimisation runs by construction result (ok, infeasible, invalid, error).
	RunsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "anneal_runs_started_total", Help: "Optimisation runs started by construction result."},
		[]string{"result"},
	)
	// ActiveRuns is the number of runs currently held in memory.
	ActiveRuns = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "anneal_active_runs", Help: "Optimisation runs currently held in memory."},
	)
	// Moves counts annealing iterations by outcome (accepted, rejected, capacity_rejected).
	Moves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "anneal_moves_total", Help: "Annealing iterations by outcome."},
		[]string{"outcome"},
	)
	// Improvements counts iterations that lowered the best distance.
	Improvements = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "anneal_best_improvements_total", Help: "Iterations that produced a new best solution."},
	)
	// BatchDuration records the wall time of one batch in seconds.
	BatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "anneal_batch_duration_seconds", Help: "Annealing batch duration in seconds.", Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(RunsStarted)
		Registry.MustRegister(ActiveRuns)
		Registry.MustRegister(Moves)
		Registry.MustRegister(Improvements)
		Registry.MustRegister(BatchDuration)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// ObserveStats adds the outcome counts of one batch.
func ObserveStats(accepted, rejected, capacityRejected, improvements int) {
	Moves.WithLabelValues("accepted").Add(float64(accepted))
	Moves.WithLabelValues("rejected").Add(float64(rejected))
	Moves.WithLabelValues("capacity_rejected").Add(float64(capacityRejected))
	Improvements.Add(float64(improvements))
}
