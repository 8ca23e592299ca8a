package domain

// Represents a single stop in a vehicle route.
type RouteStop struct {
	PointID int
	Point   Point
	Demand  int
}

// Represents the planned route of a single vehicle.
// A RoutePlan is a read-only snapshot of a solution, taken for rendering.
// Distance includes the legs from and back to the depot.
type RoutePlan struct {
	VehicleID int
	Capacity  int
	Load      int
	Distance  float64
	Stops     []RouteStop
}
