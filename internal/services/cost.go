package services

import "cvrp-annealing-service/internal/domain"

// RouteDistance returns the closed-tour length of one vehicle: depot to the
// first stop, stop to stop, and the last stop back to the depot.
// An empty route contributes nothing.
func RouteDistance(v *domain.Vehicle, depot domain.Point) float64 {
	if len(v.Route) == 0 {
		return 0
	}

	total := domain.Distance(depot, v.Route[0].Point)
	for i := 0; i < len(v.Route)-1; i++ {
		total += domain.Distance(v.Route[i].Point, v.Route[i+1].Point)
	}
	total += domain.Distance(v.Route[len(v.Route)-1].Point, depot)

	return total
}

// TotalDistance sums RouteDistance over the fleet. Capacity is not checked.
func TotalDistance(sol *domain.Solution, depot domain.Point) float64 {
	if sol == nil {
		return 0
	}

	total := 0.0
	for _, v := range sol.Vehicles {
		total += RouteDistance(v, depot)
	}
	return total
}
