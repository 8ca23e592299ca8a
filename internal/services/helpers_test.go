package services

import (
	"cvrp-annealing-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

var testDepot = domain.Point{X: 300, Y: 200}

func demandPoint(t *testing.T, id int, x, y float64, demand int) *domain.DemandPoint {
	t.Helper()
	p, err := domain.NewDemandPoint(id, x, y, demand)
	require.NoError(t, err)
	return p
}

// scenarioPoints is the four-point, three-vehicle example used across tests.
func scenarioPoints(t *testing.T) []*domain.DemandPoint {
	t.Helper()
	return []*domain.DemandPoint{
		demandPoint(t, 1, 100, 100, 10),
		demandPoint(t, 2, 450, 120, 20),
		demandPoint(t, 3, 250, 350, 15),
		demandPoint(t, 4, 520, 330, 25),
	}
}

func scenarioFleet() FleetConfig {
	return FleetConfig{VehicleCount: 3, CapacityPerVehicle: 50}
}

// multiset returns point ids keyed by count so assignments can be compared.
func multiset(sol *domain.Solution) map[int]int {
	out := make(map[int]int)
	for _, p := range sol.AssignedPoints() {
		out[p.PointID]++
	}
	return out
}
