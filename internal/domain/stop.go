package domain

// DefaultVisitMinutes is the visit duration assumed for a stop whose
// configured duration is unset or non-positive.
const DefaultVisitMinutes = 60

// MaxStopsPerDay caps the length of a day's stop list.
const MaxStopsPerDay = 50

// Stop is a point of interest placed in a day's visiting sequence.
// Name is the stop's identity within a day: two stops of the same day never
// share a name. Locked pins the stop to its index when the day is optimized.
type Stop struct {
	Name                 string     `json:"name"`
	Coordinate           Coordinate `json:"coordinate"`
	VisitDurationMinutes int        `json:"visit_time_minutes,omitempty"`
	Locked               bool       `json:"locked"`
}

// EffectiveVisitMinutes returns the visit duration used in time math.
func (s Stop) EffectiveVisitMinutes() int {
	if s.VisitDurationMinutes > 0 {
		return s.VisitDurationMinutes
	}
	return DefaultVisitMinutes
}
