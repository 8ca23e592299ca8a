package dto

type PointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type DemandPointRequest struct {
	PointID int     `json:"point_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Demand  int     `json:"demand"`
}

// StartRunRequest fields left zero fall back to server defaults.
// When Points is empty the stored demand points are used.
type StartRunRequest struct {
	Points          []DemandPointRequest `json:"points"`
	Depot           *PointRequest        `json:"depot"`
	VehicleCount    int                  `json:"vehicle_count"`
	VehicleCapacity int                  `json:"vehicle_capacity"`
	Temperature     float64              `json:"temperature"`
	CoolingRate     float64              `json:"cooling_rate"`
	Seed            int64                `json:"seed"`
	Strategy        string               `json:"strategy"`
	EnforceCapacity *bool                `json:"enforce_capacity"`
}

type StepRequest struct {
	Iterations int `json:"iterations"`
}

type StopResponse struct {
	PointID int       `json:"point_id"`
	Coords  []float64 `json:"coords"`
	Demand  int       `json:"demand"`
}

type RouteResponse struct {
	VehicleID int            `json:"vehicle_id"`
	Capacity  int            `json:"capacity"`
	Load      int            `json:"load"`
	Distance  float64        `json:"distance"`
	Stops     []StopResponse `json:"stops"`
}

type StatsResponse struct {
	Accepted         int `json:"accepted"`
	AcceptedWorse    int `json:"accepted_worse"`
	Rejected         int `json:"rejected"`
	CapacityRejected int `json:"capacity_rejected"`
	Improvements     int `json:"improvements"`
}

type RunResponse struct {
	RunID           string          `json:"run_id"`
	Seed            int64           `json:"seed"`
	Strategy        string          `json:"strategy"`
	EnforceCapacity bool            `json:"enforce_capacity"`
	Depot           []float64       `json:"depot"`
	Iteration       int             `json:"iteration"`
	Temperature     float64         `json:"temperature"`
	CoolingRate     float64         `json:"cooling_rate"`
	InitialDistance float64         `json:"initial_distance"`
	CurrentDistance float64         `json:"current_distance"`
	BestDistance    float64         `json:"best_distance"`
	BestFeasible    bool            `json:"best_feasible"`
	Progress        string          `json:"progress"`
	Stats           StatsResponse   `json:"stats"`
	Routes          []RouteResponse `json:"routes"`
}

// StreamMessage is one websocket frame of GET /runs/{id}/stream.
// Type is "progress" for each iteration, then "done" with the run, or "error".
type StreamMessage struct {
	Type            string       `json:"type"`
	Iteration       int          `json:"iteration,omitempty"`
	CurrentDistance float64      `json:"current_distance,omitempty"`
	BestDistance    float64      `json:"best_distance,omitempty"`
	Run             *RunResponse `json:"run,omitempty"`
	Error           string       `json:"error,omitempty"`
}
