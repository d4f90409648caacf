package planner

import (
	"math"

	"github.com/iotinerary/planner/internal/domain"
)

// tieToleranceKm absorbs the rounding noise of summing 1-decimal legs.
// Tours whose loop costs differ by no more than this are treated as equal.
const tieToleranceKm = 0.1

// solveBruteForce searches every ordering of stops for the cheapest closed
// loop hub -> ... -> hub. Among loops within tieToleranceKm of the best found
// so far, the one with the shorter first leg wins.
//
// Cost is O(n!); callers gate it on len(stops) < ExactSearchLimit.
func solveBruteForce(hub domain.Coordinate, stops []domain.Stop) []domain.Stop {
	n := len(stops)
	dist := distanceMatrix(hub, stops)

	var best []int
	minTotal := math.Inf(1)
	bestFirstLeg := math.Inf(1)

	for perm := range permutations(n) {
		firstLeg := dist[0][perm[0]+1]
		total := loopCost(dist, perm)

		switch {
		case total < minTotal-tieToleranceKm:
			minTotal, bestFirstLeg, best = total, firstLeg, perm
		case math.Abs(total-minTotal) <= tieToleranceKm && firstLeg < bestFirstLeg:
			minTotal, bestFirstLeg, best = total, firstLeg, perm
		}
	}

	out := make([]domain.Stop, n)
	for i, idx := range best {
		out[i] = stops[idx]
	}
	return out
}

// distanceMatrix returns rounded pairwise distances where index 0 is the hub
// and index i+1 is stops[i].
func distanceMatrix(hub domain.Coordinate, stops []domain.Stop) [][]float64 {
	points := make([]domain.Coordinate, 0, len(stops)+1)
	points = append(points, hub)
	for _, s := range stops {
		points = append(points, s.Coordinate)
	}

	m := make([][]float64, len(points))
	for i := range points {
		m[i] = make([]float64, len(points))
	}
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			d := DistanceKm(&points[i], &points[j])
			m[i][j], m[j][i] = d, d
		}
	}
	return m
}

// loopCost is the closed-loop cost of visiting stops in perm order.
func loopCost(dist [][]float64, perm []int) float64 {
	total := dist[0][perm[0]+1]
	for i := 0; i < len(perm)-1; i++ {
		total += dist[perm[i]+1][perm[i+1]+1]
	}
	return total + dist[perm[len(perm)-1]+1][0]
}
