package services

import (
	"cvrp-annealing-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteDistanceIncludesDepotLegs(t *testing.T) {
	depot := domain.Point{X: 0, Y: 0}
	v := domain.NewVehicle(1, 50)
	v.Route = []*domain.DemandPoint{
		{PointID: 1, Point: domain.Point{X: 3, Y: 4}, Demand: 1},
		{PointID: 2, Point: domain.Point{X: 3, Y: 0}, Demand: 1},
	}

	// 5 out, 4 across, 3 back
	assert.InDelta(t, 12.0, RouteDistance(v, depot), 1e-9)
}

func TestTotalDistanceEmptyRoutes(t *testing.T) {
	sol := domain.NewSolution(domain.NewFleet(3, 50))

	assert.Equal(t, 0.0, TotalDistance(sol, testDepot))
	assert.Equal(t, 0.0, TotalDistance(nil, testDepot))
}

func TestTotalDistanceSumsVehicles(t *testing.T) {
	depot := domain.Point{X: 0, Y: 0}
	vehicles := domain.NewFleet(3, 50)
	vehicles[0].Route = []*domain.DemandPoint{{PointID: 1, Point: domain.Point{X: 0, Y: 2}, Demand: 1}}
	vehicles[2].Route = []*domain.DemandPoint{{PointID: 2, Point: domain.Point{X: 5, Y: 0}, Demand: 1}}

	assert.InDelta(t, 14.0, TotalDistance(domain.NewSolution(vehicles), depot), 1e-9)
}

func TestPlanSolution(t *testing.T) {
	depot := domain.Point{X: 0, Y: 0}
	vehicles := domain.NewFleet(2, 50)
	vehicles[0].Route = []*domain.DemandPoint{{PointID: 7, Point: domain.Point{X: 3, Y: 4}, Demand: 12}}

	plans := PlanSolution(domain.NewSolution(vehicles), depot)

	assert.Len(t, plans, 2)
	assert.Equal(t, 1, plans[0].VehicleID)
	assert.Equal(t, 12, plans[0].Load)
	assert.InDelta(t, 10.0, plans[0].Distance, 1e-9)
	assert.Equal(t, []domain.RouteStop{{PointID: 7, Point: domain.Point{X: 3, Y: 4}, Demand: 12}}, plans[0].Stops)
	assert.Empty(t, plans[1].Stops)
	assert.Equal(t, 0.0, plans[1].Distance)
}
