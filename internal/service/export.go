package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/planner"
	"github.com/iotinerary/planner/internal/repo"
)

// ExportService flattens an itinerary into one row per stop.
type ExportService struct {
	itineraries repo.ItineraryRepo
	stops       repo.StopRepo
	hubs        repo.HubRepo
	estimator   planner.Estimator
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(itineraries repo.ItineraryRepo, stops repo.StopRepo, hubs repo.HubRepo, estimator planner.Estimator) *ExportService {
	return &ExportService{itineraries: itineraries, stops: stops, hubs: hubs, estimator: estimator}
}

// Export returns one ExportRow per stop of the itinerary, days in order and
// stops in visiting order. Days without stops contribute no rows.
// Always returns a non-nil slice.
// Returns domain.ErrNotFound if the itinerary does not exist.
func (s *ExportService) Export(ctx context.Context, itineraryID uuid.UUID) ([]domain.ExportRow, error) {
	it, err := s.itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	var hub *domain.Hub
	h, err := s.hubs.GetByName(ctx, it.HubName)
	switch {
	case err == nil:
		hub = &h
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	days, err := s.stops.ListDays(ctx, itineraryID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, d := range days {
		segments := s.estimator.DriveSegments(hub, d.Stops)
		status := s.estimator.DayTimeUsage(hub, d.Stops, 0).Status
		date := it.DateOf(d.Number).Format("2006-01-02")

		for i, st := range d.Stops {
			rows = append(rows, domain.ExportRow{
				Day:          d.Number,
				Date:         date,
				DayStatus:    status,
				Position:     i + 1,
				StopName:     st.Name,
				Lat:          st.Coordinate.Lat,
				Lon:          st.Coordinate.Lon,
				VisitMinutes: st.EffectiveVisitMinutes(),
				DriveMinutes: segments[i].DriveTimeMinutes,
				Locked:       st.Locked,
			})
		}
	}
	return rows, nil
}
