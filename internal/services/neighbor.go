package services

import (
	"cvrp-annealing-service/internal/domain"
	"math/rand"
)

// Neighbor returns a perturbed copy of sol; sol itself is never modified.
//
// Two distinct vehicles are drawn uniformly. When both carry at least one stop,
// one stop of each is drawn uniformly and the two stops trade places. When
// either route is empty, or the fleet has a single vehicle, the copy is
// returned unchanged and callers must treat it as an ordinary candidate.
//
// The swap may leave a vehicle over capacity.
func Neighbor(sol *domain.Solution, rng *rand.Rand) *domain.Solution {
	next := sol.Clone()

	n := len(next.Vehicles)
	if n < 2 {
		return next
	}

	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}

	a := next.Vehicles[i]
	b := next.Vehicles[j]
	if len(a.Route) == 0 || len(b.Route) == 0 {
		// TODO: decide whether an empty side should receive a relocated stop
		// instead of producing a no-op.
		return next
	}

	pa := rng.Intn(len(a.Route))
	pb := rng.Intn(len(b.Route))
	a.Route[pa], b.Route[pb] = b.Route[pb], a.Route[pa]

	return next
}
