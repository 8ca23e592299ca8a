package domain

import "fmt"

// Represents a single delivery request placed on the plane.
// A DemandPoint is created once and never mutated afterwards. It is always
// handled by pointer so that the same request can be recognised in every
// solution derived from the initial one.
type DemandPoint struct {
	PointID int
	Point
	Demand int
}

func NewDemandPoint(id int, x, y float64, demand int) (*DemandPoint, error) {
	if demand <= 0 {
		return nil, fmt.Errorf("new demand point: point %d demand must be positive (demand=%d)", id, demand)
	}

	return &DemandPoint{
		PointID: id,
		Point:   Point{X: x, Y: y},
		Demand:  demand,
	}, nil
}

// TotalDemand sums the demand of all points.
func TotalDemand(points []*DemandPoint) int {
	total := 0
	for _, p := range points {
		total += p.Demand
	}
	return total
}
