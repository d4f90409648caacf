package planner

import (
	"slices"

	"github.com/iotinerary/planner/internal/domain"
)

// ExactSearchLimit is the stop count from which exhaustive search is no
// longer attempted (9! = 362,880 orderings is the largest exact search).
const ExactSearchLimit = 10

// Strategy names the solver Optimize runs for a given input.
type Strategy string

const (
	StrategyNone   Strategy = "none"   // nothing to reorder
	StrategyExact  Strategy = "exact"  // exhaustive search, no locks, < ExactSearchLimit stops
	StrategyGreedy Strategy = "greedy" // lock-aware nearest neighbour
)

// SelectStrategy reports which solver Optimize uses for hub and stops.
func SelectStrategy(hub *domain.Hub, stops []domain.Stop) Strategy {
	switch {
	case !hub.Located() || len(stops) < 2:
		return StrategyNone
	case slices.ContainsFunc(stops, func(s domain.Stop) bool { return s.Locked }):
		return StrategyGreedy
	case len(stops) < ExactSearchLimit:
		return StrategyExact
	default:
		return StrategyGreedy
	}
}

// Optimize returns a new ordering of stops that shortens the day's driving.
//
// The result always has the same stops as the input, every locked stop at its
// input index, and is deterministic for a given input order. The input slice
// is never modified. With fewer than two stops or a missing hub the result is
// a copy of the input.
func Optimize(hub *domain.Hub, stops []domain.Stop) []domain.Stop {
	switch SelectStrategy(hub, stops) {
	case StrategyExact:
		return solveBruteForce(*hub.Coordinate, stops)
	case StrategyGreedy:
		return solveWithLocks(*hub.Coordinate, stops)
	default:
		return slices.Clone(stops)
	}
}

// LoopDistance is the closed-loop distance hub -> stops... -> hub, the cost
// Optimize minimises. It differs from TotalRouteDistance by the return leg.
func LoopDistance(hub *domain.Hub, stops []domain.Stop) float64 {
	if !hub.Located() || len(stops) == 0 {
		return 0
	}
	last := &stops[len(stops)-1].Coordinate
	return round1(TotalRouteDistance(hub, stops) + DistanceKm(last, hub.Coordinate))
}
