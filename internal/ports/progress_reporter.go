package ports

// Receives one progress line per annealing iteration.
// Implementations are called synchronously from the annealing loop and must not
// retain or mutate engine state.
type ProgressReporter interface {
	Report(iteration int, currentDistance float64, bestDistance float64)
}

// ReporterFunc adapts a plain function to a ProgressReporter.
type ReporterFunc func(iteration int, currentDistance float64, bestDistance float64)

func (f ReporterFunc) Report(iteration int, currentDistance float64, bestDistance float64) {
	f(iteration, currentDistance, bestDistance)
}
