package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasibleConstruction is matched by every *InfeasibleError.
	ErrInfeasibleConstruction = errors.New("infeasible construction")
	ErrInvalidConfiguration   = errors.New("invalid configuration")
	ErrRunNotFound            = errors.New("run not found")
)

// InfeasibleError is returned when no initial solution could be built.
// PointID and Demand identify the point left unplaced by the greedy builder;
// they are zero when construction was rejected up front.
type InfeasibleError struct {
	Reason        string
	PointID       int
	Demand        int
	TotalDemand   int
	TotalCapacity int
	Vehicles      int
}

func (e *InfeasibleError) Error() string {
	if e.PointID != 0 {
		return fmt.Sprintf(
			"infeasible construction: %s (point=%d demand=%d total_demand=%d total_capacity=%d vehicles=%d)",
			e.Reason, e.PointID, e.Demand, e.TotalDemand, e.TotalCapacity, e.Vehicles,
		)
	}
	return fmt.Sprintf(
		"infeasible construction: %s (total_demand=%d total_capacity=%d vehicles=%d)",
		e.Reason, e.TotalDemand, e.TotalCapacity, e.Vehicles,
	)
}

func (e *InfeasibleError) Is(target error) bool {
	return target == ErrInfeasibleConstruction
}
