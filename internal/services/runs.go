package services

import (
	"context"
	"cvrp-annealing-service/internal/domain"
	"cvrp-annealing-service/internal/metrics"
	"cvrp-annealing-service/internal/platform/obs"
	"cvrp-annealing-service/internal/ports"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type StartRunRequest struct {
	// Points to route. When empty, points are loaded from the repository.
	Points          []*domain.DemandPoint
	Depot           domain.Point
	Fleet           FleetConfig
	Anneal          AnnealConfig
	Seed            int64
	Strategy        Strategy
	EnforceCapacity bool
}

// RunSnapshot is a read-only view of a run between batches.
type RunSnapshot struct {
	RunID           string
	Seed            int64
	Strategy        Strategy
	EnforceCapacity bool
	Depot           domain.Point
	Iteration       int
	Temperature     float64
	CoolingRate     float64
	InitialDistance float64
	CurrentDistance float64
	BestDistance    float64
	BestFeasible    bool
	Stats           AnnealingStats
	BestRoutes      []domain.RoutePlan
	CreatedAt       time.Time
}

// Run is one optimisation session. Batches on the same run are serialised.
type Run struct {
	id              string
	seed            int64
	strategy        Strategy
	coolingRate     float64
	initialDistance float64
	createdAt       time.Time

	mu     sync.Mutex
	engine *Engine
	state  AnnealingState
}

func (r *Run) snapshot() RunSnapshot {
	return RunSnapshot{
		RunID:           r.id,
		Seed:            r.seed,
		Strategy:        r.strategy,
		EnforceCapacity: r.engine.EnforceCapacityOnMove,
		Depot:           r.engine.Depot,
		Iteration:       r.state.Iteration,
		Temperature:     r.state.Temperature,
		CoolingRate:     r.coolingRate,
		InitialDistance: r.initialDistance,
		CurrentDistance: r.state.CurrentDistance,
		BestDistance:    r.state.BestDistance,
		BestFeasible:    r.state.Best.Feasible(),
		Stats:           r.state.Stats,
		BestRoutes:      PlanSolution(r.state.Best, r.engine.Depot),
		CreatedAt:       r.createdAt,
	}
}

// RunManager owns every in-memory run, replacing process-wide optimisation state.
// Runs are discarded on Reset or when the process exits.
type RunManager struct {
	repo     ports.DemandRepository
	maxBatch int

	mu   sync.RWMutex
	runs map[string]*Run
}

// NewRunManager creates a manager. maxBatch <= 0 disables the batch size limit.
func NewRunManager(repo ports.DemandRepository, maxBatch int) *RunManager {
	return &RunManager{
		repo:     repo,
		maxBatch: maxBatch,
		runs:     make(map[string]*Run),
	}
}

// Start constructs an initial solution and runs the first single iteration.
func (m *RunManager) Start(
	ctx context.Context,
	req StartRunRequest,
	reporter ports.ProgressReporter,
) (_ RunSnapshot, err error) {
	defer obs.Time(ctx, "runs.Start")(&err)
	defer func() { metrics.RunsStarted.WithLabelValues(startResult(err)).Inc() }()

	if err := req.Fleet.Validate(); err != nil {
		return RunSnapshot{}, fmt.Errorf("start run: %w", err)
	}
	if err := req.Anneal.Validate(); err != nil {
		return RunSnapshot{}, fmt.Errorf("start run: %w", err)
	}

	points := req.Points
	if len(points) == 0 {
		if m.repo == nil {
			return RunSnapshot{}, fmt.Errorf("start run: %w: no points given and no repository configured", ErrInvalidConfiguration)
		}
		points, err = m.repo.ListDemands(ctx)
		if err != nil {
			return RunSnapshot{}, fmt.Errorf("start run: list demands: %w", err)
		}
	}

	seed := ResolveSeed(req.Seed)
	engine := NewEngine(req.Depot, NewRand(seed))
	engine.EnforceCapacityOnMove = req.EnforceCapacity

	strategy := req.Strategy
	if strategy == "" {
		strategy = StrategySequential
	}

	initial, err := engine.Construct(points, req.Fleet, strategy)
	if err != nil {
		return RunSnapshot{}, fmt.Errorf("start run: %w", err)
	}

	state, err := engine.Start(initial, req.Anneal.InitialTemperature)
	if err != nil {
		return RunSnapshot{}, fmt.Errorf("start run: %w", err)
	}

	run := &Run{
		id:              uuid.NewString(),
		seed:            seed,
		strategy:        strategy,
		coolingRate:     req.Anneal.CoolingRate,
		initialDistance: state.CurrentDistance,
		createdAt:       time.Now().UTC(),
		engine:          engine,
		state:           state,
	}

	log.Info().
		Str("run_id", run.id).
		Int64("seed", seed).
		Str("strategy", string(strategy)).
		Int("points", len(points)).
		Int("vehicles", req.Fleet.VehicleCount).
		Int("capacity", req.Fleet.CapacityPerVehicle).
		Float64("initial_distance", state.CurrentDistance).
		Msg("run started")

	run.mu.Lock()
	defer run.mu.Unlock()

	if err := m.runBatch(run, 1, reporter); err != nil {
		return RunSnapshot{}, fmt.Errorf("start run: %w", err)
	}

	m.mu.Lock()
	m.runs[run.id] = run
	metrics.ActiveRuns.Set(float64(len(m.runs)))
	m.mu.Unlock()

	return run.snapshot(), nil
}

// Step runs another batch of iterations on an existing run.
func (m *RunManager) Step(
	ctx context.Context,
	id string,
	iterations int,
	reporter ports.ProgressReporter,
) (_ RunSnapshot, err error) {
	defer obs.Time(ctx, "runs.Step")(&err)

	if err := ctx.Err(); err != nil {
		return RunSnapshot{}, err
	}

	if iterations <= 0 {
		return RunSnapshot{}, fmt.Errorf("step run: %w: iterations must be positive (got %d)", ErrInvalidConfiguration, iterations)
	}
	if m.maxBatch > 0 && iterations > m.maxBatch {
		return RunSnapshot{}, fmt.Errorf("step run: %w: iterations must not exceed %d (got %d)", ErrInvalidConfiguration, m.maxBatch, iterations)
	}

	run, err := m.lookup(id)
	if err != nil {
		return RunSnapshot{}, fmt.Errorf("step run: %w", err)
	}

	run.mu.Lock()
	defer run.mu.Unlock()

	if err := m.runBatch(run, iterations, reporter); err != nil {
		return RunSnapshot{}, fmt.Errorf("step run %s: %w", id, err)
	}

	return run.snapshot(), nil
}

// Get returns the current snapshot of a run.
func (m *RunManager) Get(id string) (RunSnapshot, error) {
	run, err := m.lookup(id)
	if err != nil {
		return RunSnapshot{}, fmt.Errorf("get run: %w", err)
	}

	run.mu.Lock()
	defer run.mu.Unlock()
	return run.snapshot(), nil
}

// Reset discards a run.
func (m *RunManager) Reset(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.runs[id]; !ok {
		return fmt.Errorf("reset run %q: %w", id, ErrRunNotFound)
	}
	delete(m.runs, id)
	metrics.ActiveRuns.Set(float64(len(m.runs)))

	log.Info().Str("run_id", id).Msg("run discarded")
	return nil
}

func (m *RunManager) lookup(id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %q: %w", id, ErrRunNotFound)
	}
	return run, nil
}

// runBatch must be called with run.mu held.
func (m *RunManager) runBatch(run *Run, iterations int, reporter ports.ProgressReporter) error {
	logReporter := LogReporter{Logger: log.Logger, RunID: run.id, Every: 100}

	before := run.state.Stats
	start := time.Now()

	state, err := run.engine.RunBatch(run.state, iterations, run.coolingRate, MultiReporter{logReporter, reporter})
	if err != nil {
		return err
	}
	run.state = state

	metrics.BatchDuration.Observe(time.Since(start).Seconds())
	after := run.state.Stats
	metrics.ObserveStats(
		after.Accepted-before.Accepted,
		after.Rejected-before.Rejected,
		after.CapacityRejected-before.CapacityRejected,
		after.Improvements-before.Improvements,
	)

	log.Info().
		Str("run_id", run.id).
		Int("iterations", iterations).
		Int("iteration", run.state.Iteration).
		Float64("temperature", run.state.Temperature).
		Float64("current_distance", run.state.CurrentDistance).
		Float64("best_distance", run.state.BestDistance).
		Dur("dur", time.Since(start)).
		Msg("batch finished")

	return nil
}

func startResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInfeasibleConstruction):
		return "infeasible"
	case errors.Is(err, ErrInvalidConfiguration):
		return "invalid"
	default:
		return "error"
	}
}
