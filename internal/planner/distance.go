// Package planner holds the trip-planning core: straight-line distance and
// drive-time estimates, the per-day time wallet, and the route optimizer.
//
// Everything here is synchronous and pure. Functions never mutate their
// inputs and never return errors; missing hubs, empty stop lists and
// non-positive visit durations degrade to documented defaults.
package planner

import (
	"math"

	"github.com/iotinerary/planner/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0088

// DistanceKm returns the great-circle distance between a and b in kilometres,
// rounded to one decimal place. It returns 0 when either coordinate is nil.
func DistanceKm(a, b *domain.Coordinate) float64 {
	if a == nil || b == nil {
		return 0
	}
	return round1(haversine(*a, *b))
}

// TotalRouteDistance sums the legs hub -> stops[0] -> ... -> stops[n-1].
// The return leg to the hub is not included. The result is rounded to one
// decimal place; it is 0 for an empty list or a missing hub.
func TotalRouteDistance(hub *domain.Hub, stops []domain.Stop) float64 {
	if !hub.Located() || len(stops) == 0 {
		return 0
	}

	total := 0.0
	current := hub.Coordinate
	for i := range stops {
		total += DistanceKm(current, &stops[i].Coordinate)
		current = &stops[i].Coordinate
	}
	return round1(total)
}

// haversine computes the unrounded great-circle distance in kilometres.
//
//	a = sin²(Δφ/2) + cos φ1 · cos φ2 · sin²(Δλ/2)
//	d = R · 2 · atan2(√a, √(1−a))
func haversine(from, to domain.Coordinate) float64 {
	lat1 := degreesToRadians(from.Lat)
	lat2 := degreesToRadians(to.Lat)
	dLat := lat2 - lat1
	dLon := degreesToRadians(to.Lon - from.Lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
