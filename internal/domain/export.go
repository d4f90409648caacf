package domain

// ExportRow is a single row in an itinerary export.
// It is a flat, denormalized view: one row per stop, with the day's date and
// status repeated on every stop of that day. Days without stops are omitted.
type ExportRow struct {
	Day       int
	Date      string // "2006-01-02"
	DayStatus DayStatus

	Position     int // 1-based visiting position within the day
	StopName     string
	Lat          float64
	Lon          float64
	VisitMinutes int
	DriveMinutes int // from the previous location (the hub for position 1)
	Locked       bool
}
