package services

import "cvrp-annealing-service/internal/domain"

// PlanSolution snapshots every vehicle of sol for rendering.
func PlanSolution(sol *domain.Solution, depot domain.Point) []domain.RoutePlan {
	if sol == nil {
		return []domain.RoutePlan{}
	}

	plans := make([]domain.RoutePlan, 0, len(sol.Vehicles))
	for _, v := range sol.Vehicles {
		stops := make([]domain.RouteStop, 0, len(v.Route))
		for _, p := range v.Route {
			stops = append(stops, domain.RouteStop{
				PointID: p.PointID,
				Point:   p.Point,
				Demand:  p.Demand,
			})
		}

		plans = append(plans, domain.RoutePlan{
			VehicleID: v.VehicleID,
			Capacity:  v.Capacity,
			Load:      v.Load(),
			Distance:  RouteDistance(v, depot),
			Stops:     stops,
		})
	}

	return plans
}
