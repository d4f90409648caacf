package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/planner"
	"github.com/iotinerary/planner/internal/repo"
)

// ItineraryDay is one persisted day of an itinerary with its derived metrics.
type ItineraryDay struct {
	ItineraryID uuid.UUID
	Number      int
	Date        time.Time
	DayPlan
}

// ItineraryService implements business logic for itineraries and their days.
// It holds the hub repo because every itinerary starts from a catalogued hub
// and every day's metrics are computed from that hub.
type ItineraryService struct {
	itineraries repo.ItineraryRepo
	stops       repo.StopRepo
	hubs        repo.HubRepo
	estimator   planner.Estimator
	logger      *slog.Logger
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(
	itineraries repo.ItineraryRepo,
	stops repo.StopRepo,
	hubs repo.HubRepo,
	estimator planner.Estimator,
	logger *slog.Logger,
) *ItineraryService {
	return &ItineraryService{
		itineraries: itineraries,
		stops:       stops,
		hubs:        hubs,
		estimator:   estimator,
		logger:      logger,
	}
}

// Create validates and persists a new itinerary. Days are not part of
// creation; fill them with ReplaceDayStops.
// Returns domain.ErrValidation if input violates business rules or names an
// unknown hub.
func (s *ItineraryService) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	it, err := s.normalize(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	created, err := s.itineraries.Create(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	created.Days = []domain.Day{}
	return created, nil
}

// GetByID returns an itinerary with all of its non-empty days.
// Returns domain.ErrNotFound if it does not exist.
func (s *ItineraryService) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	days, err := s.stops.ListDays(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	if days == nil {
		days = []domain.Day{}
	}
	it.Days = days
	return it, nil
}

// ListPaged returns one page of itinerary headers (without days) and the
// total count. Always returns a non-nil slice.
func (s *ItineraryService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	its, total, err := s.itineraries.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListPaged: %w", err)
	}
	if its == nil {
		its = []domain.Itinerary{}
	}
	return its, total, nil
}

// Update validates and persists header changes. The date range may not shrink
// below a day that already has stops.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// itinerary does not exist.
func (s *ItineraryService) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	it, err := s.normalize(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}

	days, err := s.stops.ListDays(ctx, it.ID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	for _, d := range days {
		if d.Number > it.DayCount() {
			return domain.Itinerary{}, fmt.Errorf(
				"service.ItineraryService.Update: %w: day %d still has stops; clear it before shortening the trip",
				domain.ErrValidation, d.Number)
		}
	}

	updated, err := s.itineraries.Update(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	if days == nil {
		days = []domain.Day{}
	}
	updated.Days = days
	return updated, nil
}

// Delete removes an itinerary and all of its days.
// Returns domain.ErrNotFound if it does not exist.
func (s *ItineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itineraries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// GetDay returns one day of an itinerary with its metrics. A day inside the
// date range with no stops yet is returned empty.
// Returns domain.ErrNotFound for an unknown itinerary or a day outside the
// itinerary's date range.
func (s *ItineraryService) GetDay(ctx context.Context, id uuid.UUID, day int) (ItineraryDay, error) {
	it, hub, err := s.loadDay(ctx, id, day)
	if err != nil {
		return ItineraryDay{}, fmt.Errorf("service.ItineraryService.GetDay: %w", err)
	}
	stops, err := s.stops.ListByDay(ctx, id, day)
	if err != nil {
		return ItineraryDay{}, fmt.Errorf("service.ItineraryService.GetDay: %w", err)
	}
	return s.dayOf(it, day, hub, stops, planner.StrategyNone), nil
}

// ReplaceDayStops stores stops as the day's new visiting sequence, in the
// order given, and returns the day's metrics.
// Returns domain.ErrValidation for invalid stops, domain.ErrNotFound for an
// unknown itinerary or day.
func (s *ItineraryService) ReplaceDayStops(ctx context.Context, id uuid.UUID, day int, stops []domain.Stop) (ItineraryDay, error) {
	it, hub, err := s.loadDay(ctx, id, day)
	if err != nil {
		return ItineraryDay{}, fmt.Errorf("service.ItineraryService.ReplaceDayStops: %w", err)
	}
	if err := validateStops(stops); err != nil {
		return ItineraryDay{}, fmt.Errorf("service.ItineraryService.ReplaceDayStops: %w", err)
	}
	if err := s.stops.ReplaceDay(ctx, id, day, stops); err != nil {
		return ItineraryDay{}, fmt.Errorf("service.ItineraryService.ReplaceDayStops: %w", err)
	}
	return s.dayOf(it, day, hub, slices.Clone(stops), planner.StrategyNone), nil
}

// OptimizeDay reorders the day's stops to shorten its driving, persists the
// new order, and returns the day's metrics. Locked stops keep their positions.
// A day whose order does not change is not rewritten.
// Returns domain.ErrNotFound for an unknown itinerary or day.
func (s *ItineraryService) OptimizeDay(ctx context.Context, id uuid.UUID, day int) (ItineraryDay, error) {
	it, hub, err := s.loadDay(ctx, id, day)
	if err != nil {
		return ItineraryDay{}, fmt.Errorf("service.ItineraryService.OptimizeDay: %w", err)
	}
	current, err := s.stops.ListByDay(ctx, id, day)
	if err != nil {
		return ItineraryDay{}, fmt.Errorf("service.ItineraryService.OptimizeDay: %w", err)
	}

	strategy := planner.SelectStrategy(hub, current)
	ordered := planner.Optimize(hub, current)
	s.logger.DebugContext(ctx, "optimizing itinerary day",
		slog.String("itinerary_id", id.String()),
		slog.Int("day", day),
		slog.Int("stops", len(current)),
		slog.String("strategy", string(strategy)),
	)

	if !sameOrder(current, ordered) {
		if err := s.stops.ReplaceDay(ctx, id, day, ordered); err != nil {
			return ItineraryDay{}, fmt.Errorf("service.ItineraryService.OptimizeDay: %w", err)
		}
	}
	return s.dayOf(it, day, hub, ordered, strategy), nil
}

// loadDay fetches the itinerary header, checks day lies in its date range,
// and resolves its hub. A hub that has disappeared from the catalogue is
// treated as missing rather than as an error.
func (s *ItineraryService) loadDay(ctx context.Context, id uuid.UUID, day int) (domain.Itinerary, *domain.Hub, error) {
	it, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, nil, err
	}
	if day < 1 || day > it.DayCount() {
		return domain.Itinerary{}, nil, fmt.Errorf("%w: day %d is outside the itinerary's %d days",
			domain.ErrNotFound, day, it.DayCount())
	}

	h, err := s.hubs.GetByName(ctx, it.HubName)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return it, nil, nil
	case err != nil:
		return domain.Itinerary{}, nil, err
	}
	return it, &h, nil
}

func (s *ItineraryService) dayOf(it domain.Itinerary, day int, hub *domain.Hub, stops []domain.Stop, strategy planner.Strategy) ItineraryDay {
	return ItineraryDay{
		ItineraryID: it.ID,
		Number:      day,
		Date:        it.DateOf(day),
		DayPlan:     buildDayPlan(s.estimator, hub, stops, 0, strategy),
	}
}

// normalize trims and validates the header fields shared by Create and Update,
// and checks the hub exists.
func (s *ItineraryService) normalize(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	it.Name = strings.TrimSpace(it.Name)
	it.HubName = strings.TrimSpace(it.HubName)
	it.Preferences = normalizePreferences(it.Preferences)

	if err := validateItinerary(it); err != nil {
		return domain.Itinerary{}, err
	}
	if _, err := lookupHub(ctx, s.hubs, it.HubName); err != nil {
		return domain.Itinerary{}, err
	}
	return it, nil
}

// validateItinerary enforces business rules common to both Create and Update.
func validateItinerary(it domain.Itinerary) error {
	switch {
	case it.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case it.HubName == "":
		return fmt.Errorf("%w: hub_name is required", domain.ErrValidation)
	case it.StartDate.IsZero():
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	case it.EndDate != nil && it.EndDate.Before(it.StartDate):
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	case it.DayCount() > domain.MaxDays:
		return fmt.Errorf("%w: an itinerary spans at most %d days", domain.ErrValidation, domain.MaxDays)
	case it.Budget < 0:
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}

	t := it.Travelers
	if t.Adults < 0 || t.Children < 0 || t.Seniors < 0 {
		return fmt.Errorf("%w: traveler counts must not be negative", domain.ErrValidation)
	}
	if t.Adults+t.Children+t.Seniors == 0 {
		return fmt.Errorf("%w: at least one traveler is required", domain.ErrValidation)
	}
	return nil
}

// normalizePreferences lowercases, trims and de-duplicates activity
// preferences, keeping first-seen order and dropping blanks.
func normalizePreferences(prefs []string) []string {
	out := make([]string, 0, len(prefs))
	for _, p := range prefs {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func sameOrder(a, b []domain.Stop) bool {
	return slices.EqualFunc(a, b, func(x, y domain.Stop) bool { return x.Name == y.Name })
}
