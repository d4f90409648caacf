package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/planner"
	"github.com/iotinerary/planner/internal/service"
)

func newExportService(its *mockItineraryRepo, stops *mockStopRepo) *service.ExportService {
	return service.NewExportService(its, stops, hubsWith(equatorHub()), planner.DefaultEstimator())
}

func TestExportService_Export_Rows(t *testing.T) {
	it := validItinerary()
	it.ID = uuid.New()

	locked := stopAt("B", 0, 2)
	locked.Locked = true
	locked.VisitDurationMinutes = 30

	svc := newExportService(storedItinerary(it), &mockStopRepo{
		listDays: func(context.Context, uuid.UUID) ([]domain.Day, error) {
			return []domain.Day{
				{Number: 1, Stops: []domain.Stop{stopAt("A", 0, 1), locked}},
				{Number: 3, Stops: []domain.Stop{stopAt("C", 0, 0.1)}},
			}, nil
		},
	})

	rows, err := svc.Export(context.Background(), it.ID)

	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.ExportRow{
		Day: 1, Date: "2025-04-10", DayStatus: domain.StatusOverloaded,
		Position: 1, StopName: "A", Lat: 0, Lon: 1,
		VisitMinutes: 60, DriveMinutes: 167,
	}, rows[0])
	assert.Equal(t, 2, rows[1].Position)
	assert.Equal(t, 30, rows[1].VisitMinutes)
	assert.Equal(t, 167, rows[1].DriveMinutes, "drive from the previous stop, not the hub")
	assert.True(t, rows[1].Locked)

	assert.Equal(t, 3, rows[2].Day)
	assert.Equal(t, "2025-04-12", rows[2].Date)
	assert.Equal(t, 1, rows[2].Position)
	assert.Equal(t, domain.StatusRelaxed, rows[2].DayStatus)
}

func TestExportService_Export_NoStops(t *testing.T) {
	it := validItinerary()
	it.ID = uuid.New()
	svc := newExportService(storedItinerary(it), &mockStopRepo{})

	rows, err := svc.Export(context.Background(), it.ID)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_NotFound(t *testing.T) {
	svc := newExportService(storedItinerary(validItinerary()), &mockStopRepo{})

	_, err := svc.Export(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportService_Export_StopRepoError(t *testing.T) {
	it := validItinerary()
	it.ID = uuid.New()
	svc := newExportService(storedItinerary(it), &mockStopRepo{
		listDays: func(context.Context, uuid.UUID) ([]domain.Day, error) { return nil, errors.New("db down") },
	})

	_, err := svc.Export(context.Background(), it.ID)

	assert.ErrorContains(t, err, "service.ExportService.Export")
}
