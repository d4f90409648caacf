package domain

// Hub is the fixed starting and ending point of every day in an itinerary.
// Hubs are global and identified by Name. A hub whose Coordinate is nil
// (a placeholder such as "no starting point selected") is treated as missing
// by the planner.
type Hub struct {
	Name        string      `json:"name"`
	Coordinate  *Coordinate `json:"coordinate,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Located reports whether h is non-nil and carries a coordinate.
func (h *Hub) Located() bool {
	return h != nil && h.Coordinate != nil
}
