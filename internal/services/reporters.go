package services

import (
	"cvrp-annealing-service/internal/ports"
	"fmt"

	"github.com/rs/zerolog"
)

// FormatProgress renders the human-readable progress line of one iteration.
func FormatProgress(iteration int, currentDistance, bestDistance float64) string {
	return fmt.Sprintf(
		"Iteration: %d, Current Distance: %.2f, Best Distance: %.2f",
		iteration, currentDistance, bestDistance,
	)
}

// LogReporter writes progress lines to a zerolog logger at debug level.
// Every > 1 thins the output to one line per Every iterations.
type LogReporter struct {
	Logger zerolog.Logger
	RunID  string
	Every  int
}

func (r LogReporter) Report(iteration int, currentDistance, bestDistance float64) {
	if r.Every > 1 && iteration%r.Every != 0 {
		return
	}

	r.Logger.Debug().
		Str("run_id", r.RunID).
		Int("iteration", iteration).
		Float64("current_distance", currentDistance).
		Float64("best_distance", bestDistance).
		Msg(FormatProgress(iteration, currentDistance, bestDistance))
}

// MultiReporter fans a progress line out to several reporters in order.
type MultiReporter []ports.ProgressReporter

func (m MultiReporter) Report(iteration int, currentDistance, bestDistance float64) {
	for _, r := range m {
		if r != nil {
			r.Report(iteration, currentDistance, bestDistance)
		}
	}
}

type ProgressRecord struct {
	Iteration       int
	CurrentDistance float64
	BestDistance    float64
}

// HistoryRecorder keeps every reported line in memory.
type HistoryRecorder struct {
	Records []ProgressRecord
}

func (h *HistoryRecorder) Report(iteration int, currentDistance, bestDistance float64) {
	h.Records = append(h.Records, ProgressRecord{
		Iteration:       iteration,
		CurrentDistance: currentDistance,
		BestDistance:    bestDistance,
	})
}
