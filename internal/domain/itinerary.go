package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxDays caps the number of days a single itinerary may span.
const MaxDays = 30

// Travelers counts the party an itinerary is planned for.
type Travelers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Seniors  int `json:"seniors"`
}

// Itinerary is the top-level aggregate: a trip starting from one hub and
// spanning one or more days, each with its own ordered list of stops.
type Itinerary struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	HubName     string     `json:"hub_name"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"` // nil for a single-day itinerary
	Budget      int        `json:"budget"`
	Travelers   Travelers  `json:"travelers"`
	Preferences []string   `json:"preferences,omitempty"`
	Days        []Day      `json:"days,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DayCount returns the number of calendar days the itinerary covers.
func (it Itinerary) DayCount() int {
	if it.EndDate == nil {
		return 1
	}
	return int(it.EndDate.Sub(it.StartDate).Hours()/24) + 1
}

// DateOf returns the calendar date of the 1-based day number.
func (it Itinerary) DateOf(day int) time.Time {
	return it.StartDate.AddDate(0, 0, day-1)
}

// Day returns the stops planned for the 1-based day number, or nil when the
// day has no stops yet.
func (it Itinerary) Day(number int) []Stop {
	for _, d := range it.Days {
		if d.Number == number {
			return d.Stops
		}
	}
	return nil
}

// Day is one day of an itinerary. Stops are in visiting order.
type Day struct {
	Number int    `json:"day"`
	Stops  []Stop `json:"stops"`
}
