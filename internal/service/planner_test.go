package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/planner"
	"github.com/iotinerary/planner/internal/service"
)

func newPlannerService() *service.PlannerService {
	return service.NewPlannerService(hubsWith(equatorHub()), planner.DefaultEstimator(), discardLogger())
}

func TestPlannerService_Metrics_TwoStops(t *testing.T) {
	svc := newPlannerService()

	got, err := svc.Metrics(context.Background(), service.PlanRequest{
		HubName: "Equator",
		Stops:   []domain.Stop{stopAt("A", 0, 1), stopAt("B", 0, 2)},
	})

	require.NoError(t, err)
	require.NotNil(t, got.Hub)
	assert.Equal(t, planner.StrategyNone, got.Strategy)
	assert.InDelta(t, 222.4, got.RouteDistanceKm, 1e-9)
	assert.InDelta(t, 444.8, got.LoopDistanceKm, 1e-9)
	assert.Equal(t, []domain.DriveSegment{{DriveTimeMinutes: 167}, {DriveTimeMinutes: 167}}, got.Segments)
	assert.Equal(t, domain.StatusOverloaded, got.Usage.Status)
	assert.Equal(t, []string{"A", "B"}, names(got.Stops), "Metrics keeps the given order")
}

func TestPlannerService_Metrics_NoHub(t *testing.T) {
	svc := newPlannerService()

	got, err := svc.Metrics(context.Background(), service.PlanRequest{
		Stops: []domain.Stop{stopAt("A", 0, 1)},
	})

	require.NoError(t, err)
	assert.Nil(t, got.Hub)
	assert.Equal(t, domain.StatusEmpty, got.Usage.Status)
	assert.Equal(t, 540, got.Usage.RemainingMinutes)
	assert.Zero(t, got.RouteDistanceKm)
}

func TestPlannerService_Metrics_EmptyStops(t *testing.T) {
	svc := newPlannerService()

	got, err := svc.Metrics(context.Background(), service.PlanRequest{HubName: "Equator"})

	require.NoError(t, err)
	assert.NotNil(t, got.Stops)
	assert.Empty(t, got.Segments)
	assert.Equal(t, domain.StatusEmpty, got.Usage.Status)
}

func TestPlannerService_Metrics_CapacityOverride(t *testing.T) {
	svc := newPlannerService()

	got, err := svc.Metrics(context.Background(), service.PlanRequest{
		HubName:         "Equator",
		Stops:           []domain.Stop{stopAt("A", 0, 0.1)},
		CapacityMinutes: 600,
	})

	require.NoError(t, err)
	assert.Equal(t, 600, got.Usage.CapacityMinutes)
}

func TestPlannerService_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  service.PlanRequest
	}{
		{"unknown hub", service.PlanRequest{HubName: "Atlantis"}},
		{"blank stop name", service.PlanRequest{Stops: []domain.Stop{stopAt("  ", 0, 0)}}},
		{"duplicate names", service.PlanRequest{Stops: []domain.Stop{stopAt("A", 0, 0), stopAt("A", 1, 1)}}},
		{"latitude out of range", service.PlanRequest{Stops: []domain.Stop{stopAt("A", 91, 0)}}},
		{"longitude out of range", service.PlanRequest{Stops: []domain.Stop{stopAt("A", 0, -181)}}},
		{"negative capacity", service.PlanRequest{CapacityMinutes: -1}},
		{"too many stops", service.PlanRequest{HubName: "Equator", Stops: manyStops(domain.MaxStopsPerDay + 1)}},
	}

	svc := newPlannerService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Metrics(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)

			_, err = svc.Optimize(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestPlannerService_HubRepoError(t *testing.T) {
	svc := service.NewPlannerService(&mockHubRepo{
		getByName: func(context.Context, string) (domain.Hub, error) { return domain.Hub{}, errors.New("db down") },
	}, planner.DefaultEstimator(), discardLogger())

	_, err := svc.Metrics(context.Background(), service.PlanRequest{HubName: "Equator"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestPlannerService_Optimize_Exact(t *testing.T) {
	svc := newPlannerService()
	input := []domain.Stop{stopAt("Far", 0, 2), stopAt("Near", 0, 1)}

	got, err := svc.Optimize(context.Background(), service.PlanRequest{HubName: "Equator", Stops: input})

	require.NoError(t, err)
	assert.Equal(t, planner.StrategyExact, got.Strategy)
	assert.Equal(t, []string{"Near", "Far"}, names(got.Stops))
	assert.InDelta(t, 222.4, got.RouteDistanceKm, 1e-9)
	assert.Equal(t, []string{"Far", "Near"}, names(input), "input is not modified")
}

func TestPlannerService_Optimize_LockedStaysFirst(t *testing.T) {
	svc := newPlannerService()
	far := stopAt("Far", 0, 3)
	far.Locked = true
	input := []domain.Stop{far, stopAt("Near", 0, 1), stopAt("Mid", 0, 2)}

	got, err := svc.Optimize(context.Background(), service.PlanRequest{HubName: "Equator", Stops: input})

	require.NoError(t, err)
	assert.Equal(t, planner.StrategyGreedy, got.Strategy)
	assert.Equal(t, "Far", got.Stops[0].Name)
	assert.True(t, got.Stops[0].Locked)
	assert.Equal(t, []string{"Far", "Mid", "Near"}, names(got.Stops))
}

func TestPlannerService_Optimize_NoHubKeepsOrder(t *testing.T) {
	svc := newPlannerService()
	input := []domain.Stop{stopAt("Far", 0, 2), stopAt("Near", 0, 1)}

	got, err := svc.Optimize(context.Background(), service.PlanRequest{Stops: input})

	require.NoError(t, err)
	assert.Equal(t, planner.StrategyNone, got.Strategy)
	assert.Equal(t, []string{"Far", "Near"}, names(got.Stops))
}

func names(stops []domain.Stop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.Name
	}
	return out
}

func manyStops(n int) []domain.Stop {
	stops := make([]domain.Stop, n)
	for i := range stops {
		stops[i] = stopAt(fmt.Sprintf("Stop %d", i), 0, float64(i)*0.01)
	}
	return stops
}

func TestPlannerService_Optimize_FullDay(t *testing.T) {
	stops := manyStops(domain.MaxStopsPerDay)
	stops[0].Locked = true

	plan, err := newPlannerService().Optimize(context.Background(), service.PlanRequest{HubName: "Equator", Stops: stops})

	require.NoError(t, err)
	assert.Len(t, plan.Stops, domain.MaxStopsPerDay)
	assert.Equal(t, planner.StrategyGreedy, plan.Strategy)
}
