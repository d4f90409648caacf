package domain

// DayStatus classifies a day's time wallet.
type DayStatus string

const (
	StatusEmpty      DayStatus = "EMPTY"
	StatusRelaxed    DayStatus = "RELAXED"
	StatusTight      DayStatus = "TIGHT"
	StatusOverloaded DayStatus = "OVERLOADED"
)

// Message returns the short verdict shown next to the status.
func (s DayStatus) Message() string {
	switch s {
	case StatusRelaxed:
		return "Comfortable day. Fits well."
	case StatusTight:
		return "Doable, but leaves little slack."
	case StatusOverloaded:
		return "Too much for one day. Remove or move a stop."
	default:
		return "Add stops to see feasibility."
	}
}

// DriveSegment is the estimated drive into a stop from the previous location.
type DriveSegment struct {
	DriveTimeMinutes int `json:"drive_time_minutes"`
}

// DayTimeUsage is the time wallet of a single day: how much of the daily
// capacity the stops and the drives between them consume. It is always
// derived from a hub and a stop sequence and never stored.
type DayTimeUsage struct {
	CapacityMinutes    int       `json:"capacity_minutes"`
	TotalUsedMinutes   int       `json:"total_used_minutes"`
	DriveMinutes       int       `json:"drive_minutes"`
	VisitMinutes       int       `json:"visit_minutes"`
	ReturnDriveMinutes int       `json:"return_drive_minutes"`
	RemainingMinutes   int       `json:"remaining_minutes"` // negative when overloaded
	PercentUsed        float64   `json:"percent_used"`
	Status             DayStatus `json:"status"`
	LatestDeparture    string    `json:"latest_departure"` // "15:04", leave the hub by this time
}
