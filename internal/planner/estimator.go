package planner

import (
	"fmt"
	"math"

	"github.com/iotinerary/planner/internal/domain"
)

const (
	// DefaultAverageSpeedKPH is the assumed door-to-door driving speed.
	// It is a planning heuristic and ignores road geometry and traffic.
	DefaultAverageSpeedKPH = 40.0

	// DefaultDailyCapacityMinutes is the time budget of one day (9 hours).
	DefaultDailyCapacityMinutes = 540

	// DefaultDayEndHour is the hour by which the traveller should be back at
	// the hub. It only feeds DayTimeUsage.LatestDeparture.
	DefaultDayEndHour = 17

	// TightThresholdMinutes is the remaining slack below which a day is TIGHT.
	TightThresholdMinutes = 120
)

// Estimator converts distances into drive times and builds the per-day time
// wallet. The zero value is not usable; construct with NewEstimator.
type Estimator struct {
	speedKPH        float64
	capacityMinutes int
	dayEndHour      int
}

// NewEstimator returns an Estimator. Non-positive arguments fall back to
// DefaultAverageSpeedKPH, DefaultDailyCapacityMinutes and DefaultDayEndHour.
func NewEstimator(speedKPH float64, capacityMinutes, dayEndHour int) Estimator {
	e := Estimator{
		speedKPH:        DefaultAverageSpeedKPH,
		capacityMinutes: DefaultDailyCapacityMinutes,
		dayEndHour:      DefaultDayEndHour,
	}
	if speedKPH > 0 {
		e.speedKPH = speedKPH
	}
	if capacityMinutes > 0 {
		e.capacityMinutes = capacityMinutes
	}
	if dayEndHour > 0 && dayEndHour <= 24 {
		e.dayEndHour = dayEndHour
	}
	return e
}

// DefaultEstimator returns an Estimator with every default applied.
func DefaultEstimator() Estimator {
	return NewEstimator(0, 0, 0)
}

// SpeedKPH returns the average speed the estimator assumes.
func (e Estimator) SpeedKPH() float64 { return e.speedKPH }

// CapacityMinutes returns the daily capacity used when a caller passes none.
func (e Estimator) CapacityMinutes() int { return e.capacityMinutes }

// DriveTimeMinutes converts a straight-line distance into whole minutes.
func (e Estimator) DriveTimeMinutes(distKm float64) int {
	return int(math.Round(distKm / e.speedKPH * 60))
}

// DriveTimeMinutes converts distKm using DefaultAverageSpeedKPH.
func DriveTimeMinutes(distKm float64) int {
	return DefaultEstimator().DriveTimeMinutes(distKm)
}

// DriveSegments returns, for every stop, the drive time from the previous
// location (the hub for the first stop). The result is parallel to stops.
// With a missing hub the first segment is 0.
func (e Estimator) DriveSegments(hub *domain.Hub, stops []domain.Stop) []domain.DriveSegment {
	segments := make([]domain.DriveSegment, len(stops))

	var current *domain.Coordinate
	if hub.Located() {
		current = hub.Coordinate
	}
	for i := range stops {
		dist := DistanceKm(current, &stops[i].Coordinate)
		segments[i] = domain.DriveSegment{DriveTimeMinutes: e.DriveTimeMinutes(dist)}
		current = &stops[i].Coordinate
	}
	return segments
}

// DayTimeUsage builds the time wallet for one day. Drive time covers every
// leg of the closed loop, including the return from the last stop to the hub.
// A non-positive capacity falls back to the estimator's configured capacity.
func (e Estimator) DayTimeUsage(hub *domain.Hub, stops []domain.Stop, capacityMinutes int) domain.DayTimeUsage {
	if capacityMinutes <= 0 {
		capacityMinutes = e.capacityMinutes
	}

	if !hub.Located() || len(stops) == 0 {
		return domain.DayTimeUsage{
			CapacityMinutes:  capacityMinutes,
			RemainingMinutes: capacityMinutes,
			Status:           domain.StatusEmpty,
		}
	}

	var drive, visit int
	current := hub.Coordinate
	for i := range stops {
		visit += stops[i].EffectiveVisitMinutes()
		drive += e.DriveTimeMinutes(DistanceKm(current, &stops[i].Coordinate))
		current = &stops[i].Coordinate
	}
	returnDrive := e.DriveTimeMinutes(DistanceKm(current, hub.Coordinate))
	drive += returnDrive

	used := drive + visit
	remaining := capacityMinutes - used

	return domain.DayTimeUsage{
		CapacityMinutes:    capacityMinutes,
		TotalUsedMinutes:   used,
		DriveMinutes:       drive,
		VisitMinutes:       visit,
		ReturnDriveMinutes: returnDrive,
		RemainingMinutes:   remaining,
		PercentUsed:        percentOf(used, capacityMinutes),
		Status:             classify(remaining),
		LatestDeparture:    e.latestDeparture(used),
	}
}

// latestDeparture is the clock time the hub must be left to be back by the
// configured end of day. Days longer than the clock allows clamp to 00:00.
func (e Estimator) latestDeparture(usedMinutes int) string {
	start := max(e.dayEndHour*60-usedMinutes, 0)
	return fmt.Sprintf("%02d:%02d", start/60, start%60)
}

func classify(remainingMinutes int) domain.DayStatus {
	switch {
	case remainingMinutes < 0:
		return domain.StatusOverloaded
	case remainingMinutes < TightThresholdMinutes:
		return domain.StatusTight
	default:
		return domain.StatusRelaxed
	}
}

func percentOf(used, capacity int) float64 {
	pct := float64(used) / float64(capacity) * 100
	return math.Min(math.Max(pct, 0), 100)
}
