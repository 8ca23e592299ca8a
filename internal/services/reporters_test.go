package services

import (
	"bytes"
	"cvrp-annealing-service/internal/ports"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestFormatProgress(t *testing.T) {
	assert.Equal(t,
		"Iteration: 3, Current Distance: 12.35, Best Distance: 10.00",
		FormatProgress(3, 12.346, 10),
	)
}

func TestLogReporterEvery(t *testing.T) {
	var buf bytes.Buffer
	r := LogReporter{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel), RunID: "run-1", Every: 2}

	for i := 1; i <= 4; i++ {
		r.Report(i, float64(i), 1)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"iteration":2`)
	assert.Contains(t, lines[0], `"run_id":"run-1"`)
	assert.Contains(t, lines[1], "Iteration: 4, Current Distance: 4.00, Best Distance: 1.00")
}

func TestMultiReporterSkipsNil(t *testing.T) {
	a := &HistoryRecorder{}
	var calls int
	m := MultiReporter{a, nil, ports.ReporterFunc(func(int, float64, float64) { calls++ })}

	m.Report(1, 2, 3)
	m.Report(2, 2, 2)

	assert.Equal(t, []ProgressRecord{
		{Iteration: 1, CurrentDistance: 2, BestDistance: 3},
		{Iteration: 2, CurrentDistance: 2, BestDistance: 2},
	}, a.Records)
	assert.Equal(t, 2, calls)
}
