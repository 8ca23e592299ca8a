package services

import (
	"cvrp-annealing-service/internal/domain"
	"math"
)

// NearestNeighborOrder reorders a vehicle route greedily.
//
// Starting at the depot, the closest remaining stop is visited next. The
// algorithm does not attempt global route optimisation; it only gives routes
// produced by a packing heuristic a sensible visiting order.
func NearestNeighborOrder(v *domain.Vehicle, depot domain.Point) {
	if len(v.Route) < 2 {
		return
	}

	remaining := make([]*domain.DemandPoint, len(v.Route))
	copy(remaining, v.Route)

	ordered := make([]*domain.DemandPoint, 0, len(remaining))
	current := depot

	for len(remaining) > 0 {
		bestIdx := -1
		minDistance := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		for i, p := range remaining {
			d := domain.Distance(current, p.Point)
			// Tie-breaker ensures deterministic ordering when distances are equal.
			if bestIdx < 0 || d < minDistance || (d == minDistance && p.PointID < remaining[bestIdx].PointID) {
				minDistance = d
				bestIdx = i
			}
		}

		next := remaining[bestIdx]
		ordered = append(ordered, next)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		current = next.Point
	}

	v.Route = ordered
}
