package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/planner"
	"github.com/iotinerary/planner/internal/repo"
)

// PlanRequest is an ad-hoc day to evaluate: a hub and an ordered stop list.
// CapacityMinutes overrides the configured daily capacity when positive.
type PlanRequest struct {
	HubName         string
	Stops           []domain.Stop
	CapacityMinutes int
}

// DayPlan is a stop sequence together with every metric derived from it.
// Hub is nil when no hub was selected.
type DayPlan struct {
	Hub             *domain.Hub
	Stops           []domain.Stop
	Strategy        planner.Strategy // StrategyNone unless the stops were optimized
	RouteDistanceKm float64          // one way, hub to last stop
	LoopDistanceKm  float64          // including the drive back to the hub
	Segments        []domain.DriveSegment
	Usage           domain.DayTimeUsage
}

// PlannerService evaluates and optimizes days that are not persisted.
type PlannerService struct {
	hubs      repo.HubRepo
	estimator planner.Estimator
	logger    *slog.Logger
}

// NewPlannerService constructs a PlannerService. The estimator carries the
// configured speed, capacity and day end.
func NewPlannerService(hubs repo.HubRepo, estimator planner.Estimator, logger *slog.Logger) *PlannerService {
	return &PlannerService{hubs: hubs, estimator: estimator, logger: logger}
}

// Metrics returns the plan for the stops in the order given.
// Returns domain.ErrValidation for invalid stops or an unknown hub.
func (s *PlannerService) Metrics(ctx context.Context, req PlanRequest) (DayPlan, error) {
	hub, err := s.prepare(ctx, req)
	if err != nil {
		return DayPlan{}, fmt.Errorf("service.PlannerService.Metrics: %w", err)
	}
	return buildDayPlan(s.estimator, hub, req.Stops, req.CapacityMinutes, planner.StrategyNone), nil
}

// Optimize reorders the stops to shorten the day's driving and returns the
// plan for the new order. Locked stops keep their positions.
// Returns domain.ErrValidation for invalid stops or an unknown hub.
func (s *PlannerService) Optimize(ctx context.Context, req PlanRequest) (DayPlan, error) {
	hub, err := s.prepare(ctx, req)
	if err != nil {
		return DayPlan{}, fmt.Errorf("service.PlannerService.Optimize: %w", err)
	}

	strategy := planner.SelectStrategy(hub, req.Stops)
	s.logger.DebugContext(ctx, "optimizing day",
		slog.String("hub", req.HubName),
		slog.Int("stops", len(req.Stops)),
		slog.String("strategy", string(strategy)),
	)

	ordered := planner.Optimize(hub, req.Stops)
	return buildDayPlan(s.estimator, hub, ordered, req.CapacityMinutes, strategy), nil
}

func (s *PlannerService) prepare(ctx context.Context, req PlanRequest) (*domain.Hub, error) {
	if req.CapacityMinutes < 0 {
		return nil, fmt.Errorf("%w: capacity_minutes must not be negative", domain.ErrValidation)
	}
	if err := validateStops(req.Stops); err != nil {
		return nil, err
	}
	return lookupHub(ctx, s.hubs, req.HubName)
}

// buildDayPlan derives every metric of stops. A non-positive capacity falls
// back to the estimator's configured capacity.
func buildDayPlan(e planner.Estimator, hub *domain.Hub, stops []domain.Stop, capacity int, strategy planner.Strategy) DayPlan {
	if stops == nil {
		stops = []domain.Stop{}
	}
	return DayPlan{
		Hub:             hub,
		Stops:           stops,
		Strategy:        strategy,
		RouteDistanceKm: planner.TotalRouteDistance(hub, stops),
		LoopDistanceKm:  planner.LoopDistance(hub, stops),
		Segments:        e.DriveSegments(hub, stops),
		Usage:           e.DayTimeUsage(hub, stops, capacity),
	}
}

// validateStops enforces the rules every stored or evaluated day obeys:
//   - a day holds at most domain.MaxStopsPerDay stops
//   - every stop has a non-blank name, unique within the day
//   - coordinates lie within WGS84 degree ranges
//
// Non-positive visit durations are accepted; the estimator treats them as
// domain.DefaultVisitMinutes.
func validateStops(stops []domain.Stop) error {
	if len(stops) > domain.MaxStopsPerDay {
		return fmt.Errorf("%w: a day holds at most %d stops, got %d", domain.ErrValidation, domain.MaxStopsPerDay, len(stops))
	}
	seen := make(map[string]struct{}, len(stops))
	for i, st := range stops {
		name := strings.TrimSpace(st.Name)
		if name == "" {
			return fmt.Errorf("%w: stop %d: name is required", domain.ErrValidation, i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: stop %q appears more than once", domain.ErrValidation, name)
		}
		seen[name] = struct{}{}

		if !st.Coordinate.Valid() {
			return fmt.Errorf("%w: stop %q: coordinate out of range", domain.ErrValidation, name)
		}
	}
	return nil
}
