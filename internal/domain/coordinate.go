// Package domain contains the core data types for the island trip planner.
// This package has no dependencies on other internal packages and is imported
// by every layer (planner, repo, service, handler).
package domain

// Coordinate is an immutable latitude/longitude pair in WGS84 degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinate lies inside the WGS84 degree ranges.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}
