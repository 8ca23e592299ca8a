package services

import (
	"context"
	"cvrp-annealing-service/internal/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDemandRepo struct {
	points []*domain.DemandPoint
	err    error
	calls  int
}

func (f *fakeDemandRepo) ListDemands(ctx context.Context) ([]*domain.DemandPoint, error) {
	f.calls++
	return f.points, f.err
}

func scenarioRequest() StartRunRequest {
	return StartRunRequest{
		Depot:  testDepot,
		Fleet:  scenarioFleet(),
		Anneal: AnnealConfig{InitialTemperature: 1000, CoolingRate: 0.995},
		Seed:   31,
	}
}

func TestRunManagerLifecycle(t *testing.T) {
	repo := &fakeDemandRepo{points: scenarioPoints(t)}
	m := NewRunManager(repo, 10000)
	ctx := context.Background()

	history := &HistoryRecorder{}
	snap, err := m.Start(ctx, scenarioRequest(), history)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.NotEmpty(t, snap.RunID)
	assert.Equal(t, int64(31), snap.Seed)
	assert.Equal(t, StrategySequential, snap.Strategy)
	assert.Equal(t, 1, snap.Iteration)
	assert.Len(t, history.Records, 1)
	assert.InDelta(t, 1000*0.995, snap.Temperature, 1e-9)
	assert.LessOrEqual(t, snap.BestDistance, snap.InitialDistance)
	assert.Len(t, snap.BestRoutes, 3)

	snap, err = m.Step(ctx, snap.RunID, 99, history)
	require.NoError(t, err)
	assert.Equal(t, 100, snap.Iteration)
	require.Len(t, history.Records, 100)
	assert.Equal(t, 100, history.Records[99].Iteration)

	got, err := m.Get(snap.RunID)
	require.NoError(t, err)
	assert.Equal(t, snap.Iteration, got.Iteration)
	assert.Equal(t, snap.BestDistance, got.BestDistance)

	require.NoError(t, m.Reset(snap.RunID))

	_, err = m.Get(snap.RunID)
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = m.Step(ctx, snap.RunID, 1, nil)
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, m.Reset(snap.RunID), ErrRunNotFound)
}

func TestRunManagerMatchesEngine(t *testing.T) {
	m := NewRunManager(nil, 0)
	req := scenarioRequest()
	req.Points = scenarioPoints(t)

	history := &HistoryRecorder{}
	snap, err := m.Start(context.Background(), req, history)
	require.NoError(t, err)
	_, err = m.Step(context.Background(), snap.RunID, 499, history)
	require.NoError(t, err)

	engine, state := startScenarioWith(t, req)
	direct := &HistoryRecorder{}
	_, err = engine.RunBatch(state, 500, req.Anneal.CoolingRate, direct)
	require.NoError(t, err)

	assert.Equal(t, direct.Records, history.Records)
}

func startScenarioWith(t *testing.T, req StartRunRequest) (*Engine, AnnealingState) {
	t.Helper()
	engine := NewEngine(req.Depot, NewRand(req.Seed))
	initial, err := engine.Construct(req.Points, req.Fleet, StrategySequential)
	require.NoError(t, err)
	state, err := engine.Start(initial, req.Anneal.InitialTemperature)
	require.NoError(t, err)
	return engine, state
}

func TestRunManagerStartErrors(t *testing.T) {
	ctx := context.Background()

	m := NewRunManager(&fakeDemandRepo{points: []*domain.DemandPoint{demandPoint(t, 1, 0, 0, 60)}}, 0)
	_, err := m.Start(ctx, scenarioRequest(), nil)
	assert.ErrorIs(t, err, ErrInfeasibleConstruction)

	req := scenarioRequest()
	req.Anneal.CoolingRate = 1.5
	_, err = m.Start(ctx, req, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	req = scenarioRequest()
	req.Fleet.VehicleCount = 0
	_, err = m.Start(ctx, req, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewRunManager(nil, 0).Start(ctx, scenarioRequest(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	boom := errors.New("db down")
	_, err = NewRunManager(&fakeDemandRepo{err: boom}, 0).Start(ctx, scenarioRequest(), nil)
	assert.ErrorIs(t, err, boom)
}

func TestRunManagerStepLimits(t *testing.T) {
	m := NewRunManager(&fakeDemandRepo{points: scenarioPoints(t)}, 100)
	ctx := context.Background()

	snap, err := m.Start(ctx, scenarioRequest(), nil)
	require.NoError(t, err)

	_, err = m.Step(ctx, snap.RunID, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = m.Step(ctx, snap.RunID, 101, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	snap, err = m.Step(ctx, snap.RunID, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, 101, snap.Iteration)
}
