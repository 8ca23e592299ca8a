package services

import (
	"cmp"
	"cvrp-annealing-service/internal/domain"
	"fmt"
	"math"
	"math/rand"
	"slices"
)

// BuildInitial fills vehicles in place with a single greedy pass.
//
// The points are shuffled first so that repeated construction yields different
// feasible solutions. Points are then appended to one "current" vehicle; when a
// point does not fit, the builder moves on to the next vehicle and never looks
// back. The pass is order sensitive and can fail even when total capacity is
// sufficient. On failure the vehicles are left partially filled and must be
// discarded by the caller.
func BuildInitial(points []*domain.DemandPoint, vehicles []*domain.Vehicle, rng *rand.Rand) bool {
	return buildSequential(points, vehicles, rng) == nil
}

// buildSequential returns the first point that could not be placed, or nil.
func buildSequential(points []*domain.DemandPoint, vehicles []*domain.Vehicle, rng *rand.Rand) *domain.DemandPoint {
	shuffled := make([]*domain.DemandPoint, len(points))
	copy(shuffled, points)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, v := range vehicles {
		v.Clear()
	}

	if len(vehicles) == 0 {
		if len(shuffled) > 0 {
			return shuffled[0]
		}
		return nil
	}

	current := 0
	for _, p := range shuffled {
		if err := vehicles[current].Assign(p); err == nil {
			continue
		}

		// Advance exactly once; a point that does not fit the next vehicle either
		// strands the construction.
		current++
		if current >= len(vehicles) {
			return p
		}
		if err := vehicles[current].Assign(p); err != nil {
			return p
		}
	}

	return nil
}

// buildFirstFitDecreasing places points by descending demand into the first
// vehicle with room. It is deterministic and does not consume randomness.
func buildFirstFitDecreasing(points []*domain.DemandPoint, vehicles []*domain.Vehicle, depot domain.Point) *domain.DemandPoint {
	sorted := make([]*domain.DemandPoint, len(points))
	copy(sorted, points)

	// Ties are broken by id so the packing is reproducible.
	slices.SortStableFunc(sorted, func(a, b *domain.DemandPoint) int {
		if c := cmp.Compare(b.Demand, a.Demand); c != 0 {
			return c
		}
		return cmp.Compare(a.PointID, b.PointID)
	})

	for _, v := range vehicles {
		v.Clear()
	}

	for _, p := range sorted {
		placed := false
		for _, v := range vehicles {
			if err := v.Assign(p); err == nil {
				placed = true
				break
			}
		}
		if !placed {
			return p
		}
	}

	for _, v := range vehicles {
		NearestNeighborOrder(v, depot)
	}

	return nil
}

// Construct builds a feasible initial solution for the given fleet.
//
// A fleet whose total capacity is below the total demand is rejected before any
// packing is attempted. Every other failure comes from the chosen strategy
// running out of vehicles and is reported as an *InfeasibleError.
func (e *Engine) Construct(
	points []*domain.DemandPoint,
	fleet FleetConfig,
	strategy Strategy,
) (*domain.Solution, error) {
	if err := fleet.Validate(); err != nil {
		return nil, fmt.Errorf("construct: %w", err)
	}

	for i, p := range points {
		if p == nil {
			return nil, fmt.Errorf("construct: %w: point at index %d is nil", ErrInvalidConfiguration, i)
		}
		if p.Demand <= 0 {
			return nil, fmt.Errorf("construct: %w: point %d demand must be positive (got %d)", ErrInvalidConfiguration, p.PointID, p.Demand)
		}
		if !finite(p.X) || !finite(p.Y) {
			return nil, fmt.Errorf("construct: %w: point %d coordinates must be finite", ErrInvalidConfiguration, p.PointID)
		}
	}

	totalDemand := domain.TotalDemand(points)
	totalCapacity := fleet.TotalCapacity()
	if totalDemand > totalCapacity {
		return nil, &InfeasibleError{
			Reason:        "total demand exceeds total fleet capacity",
			TotalDemand:   totalDemand,
			TotalCapacity: totalCapacity,
			Vehicles:      fleet.VehicleCount,
		}
	}

	vehicles := domain.NewFleet(fleet.VehicleCount, fleet.CapacityPerVehicle)

	var stranded *domain.DemandPoint
	switch strategy {
	case StrategySequential, "":
		if e.Rand == nil {
			return nil, fmt.Errorf("construct: %w: random source is nil", ErrInvalidConfiguration)
		}
		stranded = buildSequential(points, vehicles, e.Rand)
	case StrategyFirstFitDecreasing:
		stranded = buildFirstFitDecreasing(points, vehicles, e.Depot)
	default:
		return nil, fmt.Errorf("construct: %w: unknown construction strategy %q", ErrInvalidConfiguration, strategy)
	}

	if stranded != nil {
		return nil, &InfeasibleError{
			Reason:        fmt.Sprintf("%s construction ran out of vehicles", strategyName(strategy)),
			PointID:       stranded.PointID,
			Demand:        stranded.Demand,
			TotalDemand:   totalDemand,
			TotalCapacity: totalCapacity,
			Vehicles:      fleet.VehicleCount,
		}
	}

	sol := domain.NewSolution(vehicles)

	// Tour lengths must stay representable for the acceptance rule and for JSON.
	if d := TotalDistance(sol, e.Depot); !finite(d) {
		return nil, fmt.Errorf("construct: %w: coordinates too large, total distance is %v", ErrInvalidConfiguration, d)
	}

	return sol, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func strategyName(s Strategy) string {
	if s == "" {
		return string(StrategySequential)
	}
	return string(s)
}
