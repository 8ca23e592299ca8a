package services

import (
	"cvrp-annealing-service/internal/domain"
	"cvrp-annealing-service/internal/ports"
	"fmt"
	"math"
	"math/rand"
)

// Engine runs simulated annealing over CVRP solutions.
//
// An Engine is not safe for concurrent use: it owns a single random stream and
// every batch must observe the state produced by the previous one.
type Engine struct {
	Depot domain.Point
	Rand  *rand.Rand

	// EnforceCapacityOnMove rejects candidates that overload a vehicle before
	// the acceptance draw. When false, overloaded candidates are evaluated like
	// any other and may become the current or best solution.
	EnforceCapacityOnMove bool
}

func NewEngine(depot domain.Point, rng *rand.Rand) *Engine {
	return &Engine{Depot: depot, Rand: rng}
}

// AnnealingStats counts iteration outcomes over the lifetime of a state.
type AnnealingStats struct {
	Accepted         int
	AcceptedWorse    int
	Rejected         int
	CapacityRejected int
	Improvements     int
}

// AnnealingState is everything that must survive between batches.
// Iteration is the absolute number of iterations already run.
type AnnealingState struct {
	Current         *domain.Solution
	CurrentDistance float64
	Best            *domain.Solution
	BestDistance    float64
	Temperature     float64
	Iteration       int
	Stats           AnnealingStats
}

// Start seeds a fresh state from an initial solution.
func (e *Engine) Start(initial *domain.Solution, temperature float64) (AnnealingState, error) {
	if initial == nil {
		return AnnealingState{}, fmt.Errorf("start annealing: %w: initial solution is nil", ErrInvalidConfiguration)
	}
	if err := validateTemperature(temperature); err != nil {
		return AnnealingState{}, fmt.Errorf("start annealing: %w", err)
	}

	d := TotalDistance(initial, e.Depot)
	return AnnealingState{
		Current:         initial,
		CurrentDistance: d,
		Best:            initial,
		BestDistance:    d,
		Temperature:     temperature,
	}, nil
}

// RunBatch runs iterations annealing steps starting from state and returns the
// updated state. Batches compose: running 1, then 99, then 900 iterations
// yields exactly the same sequence as a single batch of 1000 with the same
// random stream.
//
// Each step draws a neighbour, accepts it by the Metropolis criterion, records
// a new best when the current distance drops below it, reports progress and
// multiplies the temperature by coolingRate. The only errors are invalid
// arguments; once a batch has started it always completes.
func (e *Engine) RunBatch(
	state AnnealingState,
	iterations int,
	coolingRate float64,
	reporter ports.ProgressReporter,
) (AnnealingState, error) {
	if iterations <= 0 {
		return state, fmt.Errorf("run batch: %w: iterations must be positive (got %d)", ErrInvalidConfiguration, iterations)
	}
	if err := validateCoolingRate(coolingRate); err != nil {
		return state, fmt.Errorf("run batch: %w", err)
	}
	if state.Current == nil {
		return state, fmt.Errorf("run batch: %w: state has no current solution", ErrInvalidConfiguration)
	}
	if e.Rand == nil {
		return state, fmt.Errorf("run batch: %w: random source is nil", ErrInvalidConfiguration)
	}

	if state.Best == nil {
		state.CurrentDistance = TotalDistance(state.Current, e.Depot)
		state.Best = state.Current
		state.BestDistance = state.CurrentDistance
	}

	for n := 0; n < iterations; n++ {
		e.step(&state)

		if reporter != nil {
			reporter.Report(state.Iteration, state.CurrentDistance, state.BestDistance)
		}

		state.Temperature *= coolingRate
	}

	return state, nil
}

func (e *Engine) step(state *AnnealingState) {
	state.Iteration++

	candidate := Neighbor(state.Current, e.Rand)

	if e.EnforceCapacityOnMove && !candidate.Feasible() {
		state.Stats.CapacityRejected++
	} else {
		candidateDistance := TotalDistance(candidate, e.Depot)

		switch {
		case candidateDistance < state.CurrentDistance:
			state.Current = candidate
			state.CurrentDistance = candidateDistance
			state.Stats.Accepted++
		case e.Rand.Float64() < acceptanceProbability(state.CurrentDistance, candidateDistance, state.Temperature):
			if candidateDistance > state.CurrentDistance {
				state.Stats.AcceptedWorse++
			}
			state.Current = candidate
			state.CurrentDistance = candidateDistance
			state.Stats.Accepted++
		default:
			state.Stats.Rejected++
		}
	}

	if state.CurrentDistance < state.BestDistance {
		state.Best = state.Current
		state.BestDistance = state.CurrentDistance
		state.Stats.Improvements++
	}
}

// acceptanceProbability is the Metropolis probability of moving from a
// solution of length current to one of length candidate.
// A temperature that has decayed to zero accepts nothing uphill.
func acceptanceProbability(current, candidate, temperature float64) float64 {
	if temperature <= 0 {
		if candidate <= current {
			return 1
		}
		return 0
	}
	return math.Exp((current - candidate) / temperature)
}
