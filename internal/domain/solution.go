package domain

// The fleet as a whole: one route per vehicle.
type Solution struct {
	Vehicles []*Vehicle
}

func NewSolution(vehicles []*Vehicle) *Solution {
	return &Solution{Vehicles: vehicles}
}

// Clone deep-copies every route so the copy can be perturbed freely.
func (s *Solution) Clone() *Solution {
	vehicles := make([]*Vehicle, len(s.Vehicles))
	for i, v := range s.Vehicles {
		vehicles[i] = v.Clone()
	}
	return &Solution{Vehicles: vehicles}
}

// Feasible reports whether every vehicle is within its capacity.
func (s *Solution) Feasible() bool {
	for _, v := range s.Vehicles {
		if v.Overloaded() {
			return false
		}
	}
	return true
}

// Return every assigned point in vehicle order.
func (s *Solution) AssignedPoints() []*DemandPoint {
	n := 0
	for _, v := range s.Vehicles {
		n += len(v.Route)
	}

	out := make([]*DemandPoint, 0, n)
	for _, v := range s.Vehicles {
		out = append(out, v.Route...)
	}
	return out
}

// Return the vehicle currently carrying the point, or nil.
func (s *Solution) VehicleOf(p *DemandPoint) *Vehicle {
	for _, v := range s.Vehicles {
		for _, q := range v.Route {
			if q == p {
				return v
			}
		}
	}
	return nil
}
