package services

import (
	"fmt"
	"math"
	"strings"
)

// FleetConfig describes a homogeneous fleet.
type FleetConfig struct {
	VehicleCount       int
	CapacityPerVehicle int
}

func (c FleetConfig) Validate() error {
	if c.VehicleCount <= 0 {
		return fmt.Errorf("%w: vehicle count must be positive (got %d)", ErrInvalidConfiguration, c.VehicleCount)
	}
	if c.CapacityPerVehicle <= 0 {
		return fmt.Errorf("%w: vehicle capacity must be positive (got %d)", ErrInvalidConfiguration, c.CapacityPerVehicle)
	}
	return nil
}

func (c FleetConfig) TotalCapacity() int {
	return c.VehicleCount * c.CapacityPerVehicle
}

// AnnealConfig holds the cooling schedule of one run.
type AnnealConfig struct {
	InitialTemperature float64
	CoolingRate        float64
}

func (c AnnealConfig) Validate() error {
	if err := validateTemperature(c.InitialTemperature); err != nil {
		return err
	}
	return validateCoolingRate(c.CoolingRate)
}

func validateTemperature(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return fmt.Errorf("%w: temperature must be a positive number (got %v)", ErrInvalidConfiguration, t)
	}
	return nil
}

func validateCoolingRate(rate float64) error {
	if math.IsNaN(rate) || rate <= 0 || rate >= 1 {
		return fmt.Errorf("%w: cooling rate must be strictly between 0 and 1 (got %v)", ErrInvalidConfiguration, rate)
	}
	return nil
}

// Strategy names an initial-solution construction policy.
type Strategy string

const (
	// StrategySequential shuffles the points and fills vehicles one after
	// another, never returning to an earlier vehicle.
	StrategySequential Strategy = "sequential"
	// StrategyFirstFitDecreasing places the largest demands first, each in the
	// first vehicle with room, then orders every route by nearest neighbour.
	StrategyFirstFitDecreasing Strategy = "first-fit-decreasing"
)

// ParseStrategy maps a user-supplied name to a Strategy. Empty selects the default.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategySequential:
		return StrategySequential, nil
	case StrategyFirstFitDecreasing, "ffd":
		return StrategyFirstFitDecreasing, nil
	default:
		return "", fmt.Errorf("%w: unknown construction strategy %q", ErrInvalidConfiguration, s)
	}
}
