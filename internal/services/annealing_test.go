package services

import (
	"cvrp-annealing-service/internal/domain"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startScenario(t *testing.T, seed int64) (*Engine, AnnealingState) {
	t.Helper()

	// The scenario depot sits at the origin.
	engine := NewEngine(domain.Point{}, NewRand(seed))
	initial, err := engine.Construct(scenarioPoints(t), scenarioFleet(), StrategySequential)
	require.NoError(t, err)

	state, err := engine.Start(initial, 1000)
	require.NoError(t, err)
	return engine, state
}

func TestRunBatchScenario(t *testing.T) {
	engine, state := startScenario(t, 2024)
	initialDistance := state.CurrentDistance

	history := &HistoryRecorder{}
	final, err := engine.RunBatch(state, 1000, 0.995, history)
	require.NoError(t, err)

	require.Len(t, history.Records, 1000)
	assert.Equal(t, 1000, final.Iteration)

	prevBest := initialDistance
	minCurrent := initialDistance
	for i, rec := range history.Records {
		assert.Equal(t, i+1, rec.Iteration)
		assert.LessOrEqual(t, rec.BestDistance, prevBest, "best must never increase")
		assert.LessOrEqual(t, rec.BestDistance, rec.CurrentDistance)
		prevBest = rec.BestDistance
		minCurrent = math.Min(minCurrent, rec.CurrentDistance)
	}

	assert.LessOrEqual(t, final.BestDistance, initialDistance)
	assert.Equal(t, minCurrent, final.BestDistance)
	assert.InDelta(t, final.BestDistance, TotalDistance(final.Best, engine.Depot), 1e-9)
	assert.InDelta(t, final.CurrentDistance, TotalDistance(final.Current, engine.Depot), 1e-9)
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1, 4: 1}, multiset(final.Best))

	expectedTemp := 1000.0
	for i := 0; i < 1000; i++ {
		expectedTemp *= 0.995
	}
	assert.Equal(t, expectedTemp, final.Temperature)

	stats := final.Stats
	assert.Equal(t, 1000, stats.Accepted+stats.Rejected+stats.CapacityRejected)
	assert.Zero(t, stats.CapacityRejected)
}

func TestRunBatchesCompose(t *testing.T) {
	engineA, stateA := startScenario(t, 77)
	single := &HistoryRecorder{}
	finalA, err := engineA.RunBatch(stateA, 1000, 0.995, single)
	require.NoError(t, err)

	engineB, stateB := startScenario(t, 77)
	split := &HistoryRecorder{}
	for _, n := range []int{1, 99, 900} {
		stateB, err = engineB.RunBatch(stateB, n, 0.995, split)
		require.NoError(t, err)
	}

	assert.Equal(t, single.Records, split.Records)
	assert.Equal(t, finalA.Iteration, stateB.Iteration)
	assert.Equal(t, finalA.Temperature, stateB.Temperature)
	assert.Equal(t, finalA.BestDistance, stateB.BestDistance)
	assert.Equal(t, finalA.Stats, stateB.Stats)
}

func TestRunBatchSameSeedIsReproducible(t *testing.T) {
	run := func() []ProgressRecord {
		engine, state := startScenario(t, 5)
		history := &HistoryRecorder{}
		_, err := engine.RunBatch(state, 300, 0.99, history)
		require.NoError(t, err)
		return history.Records
	}

	assert.Equal(t, run(), run())
}

// overloadableSolution has one swap (2 <-> 5) that overloads the first vehicle.
func overloadableSolution() *domain.Solution {
	vehicles := domain.NewFleet(2, 10)
	vehicles[0].Route = []*domain.DemandPoint{
		{PointID: 1, Point: domain.Point{X: 0, Y: 5}, Demand: 8},
		{PointID: 2, Point: domain.Point{X: 5, Y: 5}, Demand: 2},
	}
	vehicles[1].Route = []*domain.DemandPoint{
		{PointID: 3, Point: domain.Point{X: -5, Y: -5}, Demand: 5},
	}
	return domain.NewSolution(vehicles)
}

func TestRunBatchEnforceCapacityOnMove(t *testing.T) {
	engine := NewEngine(domain.Point{}, NewRand(8))
	engine.EnforceCapacityOnMove = true

	state, err := engine.Start(overloadableSolution(), 1e6)
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		state, err = engine.RunBatch(state, 1, 0.999, nil)
		require.NoError(t, err)
		require.True(t, state.Current.Feasible(), "iteration %d", state.Iteration)
		require.True(t, state.Best.Feasible(), "iteration %d", state.Iteration)
	}

	assert.Positive(t, state.Stats.CapacityRejected)
	assert.Equal(t, 300, state.Stats.Accepted+state.Stats.Rejected+state.Stats.CapacityRejected)
}

func TestRunBatchPermissiveAcceptsOverload(t *testing.T) {
	engine := NewEngine(domain.Point{}, NewRand(8))

	state, err := engine.Start(overloadableSolution(), 1e6)
	require.NoError(t, err)

	sawOverload := false
	for i := 0; i < 300; i++ {
		state, err = engine.RunBatch(state, 1, 0.999, nil)
		require.NoError(t, err)
		if !state.Current.Feasible() {
			sawOverload = true
		}
	}

	assert.True(t, sawOverload)
	assert.Zero(t, state.Stats.CapacityRejected)
}

func TestRunBatchInvalidArguments(t *testing.T) {
	engine, state := startScenario(t, 1)

	_, err := engine.RunBatch(state, 0, 0.995, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = engine.RunBatch(state, 10, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = engine.RunBatch(state, 10, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = engine.RunBatch(AnnealingState{}, 10, 0.995, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = engine.Start(state.Current, 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = engine.Start(nil, 100)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestRunBatchSeedsMissingBest(t *testing.T) {
	engine, state := startScenario(t, 3)
	state.Best = nil
	state.BestDistance = 0

	final, err := engine.RunBatch(state, 10, 0.995, nil)
	require.NoError(t, err)

	require.NotNil(t, final.Best)
	assert.Greater(t, final.BestDistance, 0.0)
}

func TestRunBatchEmptyProblem(t *testing.T) {
	engine := NewEngine(testDepot, NewRand(1))
	sol, err := engine.Construct(nil, scenarioFleet(), StrategySequential)
	require.NoError(t, err)

	state, err := engine.Start(sol, 100)
	require.NoError(t, err)

	final, err := engine.RunBatch(state, 50, 0.9, nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, final.BestDistance)
	assert.Equal(t, 50, final.Iteration)
}

func TestAcceptanceProbability(t *testing.T) {
	assert.InDelta(t, math.Exp(-1), acceptanceProbability(10, 20, 10), 1e-12)
	assert.Equal(t, 1.0, acceptanceProbability(10, 10, 5))
	assert.Equal(t, 0.0, acceptanceProbability(10, 12, 0))
	assert.Equal(t, 1.0, acceptanceProbability(10, 8, 0))
}
