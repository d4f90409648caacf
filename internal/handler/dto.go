package handler

import (
	"fmt"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/service"
)

// Request and response bodies. Field names and shapes follow api/openapi.yaml.

// StopBody is a stop as sent by clients. Coordinate is a pointer so a stop
// without one is rejected instead of landing at 0,0.
type StopBody struct {
	Name             string             `json:"name"`
	Coordinate       *domain.Coordinate `json:"coordinate"`
	VisitTimeMinutes int                `json:"visit_time_minutes,omitempty"`
	Locked           bool               `json:"locked"`
}

// PlanRequestBody is the body of POST /plan/metrics and POST /plan/optimize.
type PlanRequestBody struct {
	HubName         string     `json:"hub_name"`
	Stops           []StopBody `json:"stops"`
	CapacityMinutes int        `json:"capacity_minutes,omitempty"`
}

// ReplaceStopsBody is the body of PUT /itineraries/{itineraryId}/days/{day}/stops.
type ReplaceStopsBody struct {
	Stops []StopBody `json:"stops"`
}

// ItineraryRequest is the body of POST /itineraries and PUT /itineraries/{itineraryId}.
type ItineraryRequest struct {
	Name        string              `json:"name"`
	HubName     string              `json:"hub_name"`
	StartDate   openapi_types.Date  `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	Budget      int                 `json:"budget"`
	Travelers   *domain.Travelers   `json:"travelers,omitempty"`
	Preferences []string            `json:"preferences,omitempty"`
}

// UsageResponse is a day's time wallet plus its human-readable verdict.
type UsageResponse struct {
	domain.DayTimeUsage
	Message string `json:"message"`
}

// DayPlanResponse is a stop sequence with its metrics. Hub is null when no
// hub was selected.
type DayPlanResponse struct {
	Hub             *domain.Hub           `json:"hub"`
	Stops           []domain.Stop         `json:"stops"`
	Strategy        string                `json:"strategy"`
	RouteDistanceKm float64               `json:"route_distance_km"`
	LoopDistanceKm  float64               `json:"loop_distance_km"`
	Segments        []domain.DriveSegment `json:"segments"`
	Usage           UsageResponse         `json:"usage"`
}

// ItineraryDayResponse is one stored day with its metrics.
type ItineraryDayResponse struct {
	ItineraryID openapi_types.UUID `json:"itinerary_id"`
	Day         int                `json:"day"`
	Date        openapi_types.Date `json:"date"`
	DayPlanResponse
}

// ItineraryResponse is an itinerary as returned to clients.
type ItineraryResponse struct {
	ID          openapi_types.UUID  `json:"id"`
	Name        string              `json:"name"`
	HubName     string              `json:"hub_name"`
	StartDate   openapi_types.Date  `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	DayCount    int                 `json:"day_count"`
	Budget      int                 `json:"budget"`
	Travelers   domain.Travelers    `json:"travelers"`
	Preferences []string            `json:"preferences"`
	Days        []domain.Day        `json:"days,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ItineraryListResponse is the body of GET /itineraries.
type ItineraryListResponse struct {
	Data       []ItineraryResponse `json:"data"`
	Pagination Pagination          `json:"pagination"`
}

// ExportRowResponse is one row of a JSON export.
type ExportRowResponse struct {
	Day          int                `json:"day"`
	Date         openapi_types.Date `json:"date"`
	DayStatus    domain.DayStatus   `json:"day_status"`
	Position     int                `json:"position"`
	StopName     string             `json:"stop_name"`
	Lat          float64            `json:"lat"`
	Lon          float64            `json:"lon"`
	VisitMinutes int                `json:"visit_minutes"`
	DriveMinutes int                `json:"drive_minutes"`
	Locked       bool               `json:"locked"`
}

// --- mapping helpers --------------------------------------------------------

// stopsFromBody converts client stops into domain stops. It reports the
// 1-based position of the first stop without a coordinate, or 0.
func stopsFromBody(body []StopBody) ([]domain.Stop, int) {
	stops := make([]domain.Stop, len(body))
	for i, b := range body {
		if b.Coordinate == nil {
			return nil, i + 1
		}
		stops[i] = domain.Stop{
			Name:                 b.Name,
			Coordinate:           *b.Coordinate,
			VisitDurationMinutes: b.VisitTimeMinutes,
			Locked:               b.Locked,
		}
	}
	return stops, 0
}

// bindStops converts a stop list from a request body, writing 422 and
// reporting false when it is too long or a stop lacks a coordinate. The length
// is checked before any conversion so oversized days never reach the planner.
func bindStops(w http.ResponseWriter, body []StopBody) ([]domain.Stop, bool) {
	if len(body) > domain.MaxStopsPerDay {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(
			fmt.Sprintf("a day holds at most %d stops, got %d", domain.MaxStopsPerDay, len(body))))
		return nil, false
	}
	stops, missing := stopsFromBody(body)
	if missing > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(fmt.Sprintf("stop %d: coordinate is required", missing)))
		return nil, false
	}
	return stops, true
}

func dayPlanToResponse(p service.DayPlan) DayPlanResponse {
	return DayPlanResponse{
		Hub:             p.Hub,
		Stops:           p.Stops,
		Strategy:        string(p.Strategy),
		RouteDistanceKm: p.RouteDistanceKm,
		LoopDistanceKm:  p.LoopDistanceKm,
		Segments:        p.Segments,
		Usage: UsageResponse{
			DayTimeUsage: p.Usage,
			Message:      p.Usage.Status.Message(),
		},
	}
}

func itineraryDayToResponse(d service.ItineraryDay) ItineraryDayResponse {
	return ItineraryDayResponse{
		ItineraryID:     d.ItineraryID,
		Day:             d.Number,
		Date:            openapi_types.Date{Time: d.Date},
		DayPlanResponse: dayPlanToResponse(d.DayPlan),
	}
}

// requestToItinerary builds a domain.Itinerary from a request body. A body
// without travelers plans for one adult.
func requestToItinerary(body ItineraryRequest) domain.Itinerary {
	it := domain.Itinerary{
		Name:        body.Name,
		HubName:     body.HubName,
		StartDate:   body.StartDate.Time,
		Budget:      body.Budget,
		Travelers:   domain.Travelers{Adults: 1},
		Preferences: body.Preferences,
	}
	if body.EndDate != nil {
		ed := body.EndDate.Time
		it.EndDate = &ed
	}
	if body.Travelers != nil {
		it.Travelers = *body.Travelers
	}
	return it
}

func itineraryToResponse(it domain.Itinerary) ItineraryResponse {
	resp := ItineraryResponse{
		ID:          it.ID,
		Name:        it.Name,
		HubName:     it.HubName,
		StartDate:   openapi_types.Date{Time: it.StartDate},
		DayCount:    it.DayCount(),
		Budget:      it.Budget,
		Travelers:   it.Travelers,
		Preferences: it.Preferences,
		Days:        it.Days,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	if resp.Preferences == nil {
		resp.Preferences = []string{}
	}
	if it.EndDate != nil {
		ed := openapi_types.Date{Time: *it.EndDate}
		resp.EndDate = &ed
	}
	return resp
}
