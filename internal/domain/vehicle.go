package domain

import (
	"errors"
	"fmt"
)

var ErrCapacityExceeded = errors.New("vehicle capacity exceeded")

// Delivery vehicle holding an ordered route of demand points.
// Capacity is fixed for the lifetime of a run; the load is derived from the route.
type Vehicle struct {
	VehicleID int
	Capacity  int
	Route     []*DemandPoint
}

func NewVehicle(id int, capacity int) *Vehicle {
	return &Vehicle{
		VehicleID: id,
		Capacity:  capacity,
	}
}

// NewFleet creates count empty vehicles numbered from 1.
func NewFleet(count int, capacity int) []*Vehicle {
	vehicles := make([]*Vehicle, 0, count)
	for i := 0; i < count; i++ {
		vehicles = append(vehicles, NewVehicle(i+1, capacity))
	}
	return vehicles
}

// Load returns the summed demand of the route.
func (v *Vehicle) Load() int {
	load := 0
	for _, p := range v.Route {
		load += p.Demand
	}
	return load
}

func (v *Vehicle) Remaining() int {
	return v.Capacity - v.Load()
}

// Overloaded reports whether the route demand exceeds the capacity.
// Only swap moves can produce this state.
func (v *Vehicle) Overloaded() bool {
	return v.Load() > v.Capacity
}

// Append a single demand point to the end of the route.
func (v *Vehicle) Assign(p *DemandPoint) error {
	if p.Demand > v.Remaining() {
		return fmt.Errorf(
			"assign point %d to vehicle %d (demand=%d remaining=%d): %w",
			p.PointID, v.VehicleID, p.Demand, v.Remaining(), ErrCapacityExceeded,
		)
	}
	v.Route = append(v.Route, p)
	return nil
}

// Unload all demand points from the vehicle.
func (v *Vehicle) Clear() {
	v.Route = nil
}

// Clone copies the route slice; the demand points themselves are shared.
func (v *Vehicle) Clone() *Vehicle {
	route := make([]*DemandPoint, len(v.Route))
	copy(route, v.Route)
	return &Vehicle{
		VehicleID: v.VehicleID,
		Capacity:  v.Capacity,
		Route:     route,
	}
}
