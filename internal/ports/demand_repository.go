package ports

import (
	"context"
	"cvrp-annealing-service/internal/domain"
)

// Port: a boundary for retrieving DemandPoint entities from a data source.
type DemandRepository interface {
	// Retrieve all demand points available for routing, ordered by id.
	ListDemands(ctx context.Context) ([]*domain.DemandPoint, error)
}

// Port: a demand source that can also be edited.
type DemandStore interface {
	DemandRepository
	// Store a new point and return it with its assigned id.
	CreateDemand(ctx context.Context, x, y float64, demand int) (*domain.DemandPoint, error)
	// Remove every stored point.
	ClearDemands(ctx context.Context) error
}
