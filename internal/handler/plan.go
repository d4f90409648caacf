package handler

import (
	"context"
	"net/http"

	"github.com/iotinerary/planner/internal/service"
)

// PlanMetrics handles POST /plan/metrics: metrics for the stops in the order given.
func (s *Server) PlanMetrics(w http.ResponseWriter, r *http.Request) {
	s.plan(w, r, s.planner.Metrics)
}

// PlanOptimize handles POST /plan/optimize: the stops reordered to shorten
// driving, with locked stops held in place, and the metrics of the new order.
func (s *Server) PlanOptimize(w http.ResponseWriter, r *http.Request) {
	s.plan(w, r, s.planner.Optimize)
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request, run func(context.Context, service.PlanRequest) (service.DayPlan, error)) {
	var body PlanRequestBody
	if !decodeJSON(w, r, &body) {
		return
	}
	stops, ok := bindStops(w, body.Stops)
	if !ok {
		return
	}

	plan, err := run(r.Context(), service.PlanRequest{
		HubName:         body.HubName,
		Stops:           stops,
		CapacityMinutes: body.CapacityMinutes,
	})
	if err != nil {
		s.writeError(w, r, err, "hub not found")
		return
	}
	writeJSON(w, http.StatusOK, dayPlanToResponse(plan))
}
