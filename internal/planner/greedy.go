package planner

import (
	"math"
	"slices"

	"github.com/iotinerary/planner/internal/domain"
)

// solveWithLocks is a single-pass nearest-neighbour fill that respects locks.
//
// Locked stops are placed at their input index. The remaining slots are then
// filled left to right, each with the unlocked stop closest to the current
// location (the hub, the previous slot's stop). Ties go to the stop that
// appears first in input order.
//
// The result is not globally optimal: a lock on a distant stop can force a
// zig-zag through it.
func solveWithLocks(hub domain.Coordinate, stops []domain.Stop) []domain.Stop {
	out := make([]domain.Stop, len(stops))
	filled := make([]bool, len(stops))
	pool := make([]domain.Stop, 0, len(stops))

	for i, s := range stops {
		if s.Locked {
			out[i] = s
			filled[i] = true
			continue
		}
		pool = append(pool, s)
	}

	current := hub
	for i := range out {
		if filled[i] {
			current = out[i].Coordinate
			continue
		}

		best := -1
		minDist := math.Inf(1)
		for j := range pool {
			if d := DistanceKm(&current, &pool[j].Coordinate); d < minDist {
				minDist = d
				best = j
			}
		}

		out[i] = pool[best]
		current = pool[best].Coordinate
		pool = slices.Delete(pool, best, best+1)
	}

	return out
}
