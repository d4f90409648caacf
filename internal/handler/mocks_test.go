package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/handler"
	"github.com/iotinerary/planner/internal/service"
)

// ---- mock servicers --------------------------------------------------------

type mockHubServicer struct {
	list func(ctx context.Context) ([]domain.Hub, error)
}

func (m *mockHubServicer) List(ctx context.Context) ([]domain.Hub, error) { return m.list(ctx) }

var _ handler.HubServicer = (*mockHubServicer)(nil)

type mockPlannerServicer struct {
	metrics  func(ctx context.Context, req service.PlanRequest) (service.DayPlan, error)
	optimize func(ctx context.Context, req service.PlanRequest) (service.DayPlan, error)
}

func (m *mockPlannerServicer) Metrics(ctx context.Context, req service.PlanRequest) (service.DayPlan, error) {
	return m.metrics(ctx, req)
}
func (m *mockPlannerServicer) Optimize(ctx context.Context, req service.PlanRequest) (service.DayPlan, error) {
	return m.optimize(ctx, req)
}

var _ handler.PlannerServicer = (*mockPlannerServicer)(nil)

type mockItineraryServicer struct {
	create          func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	listPaged       func(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	update          func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	delete          func(ctx context.Context, id uuid.UUID) error
	getDay          func(ctx context.Context, id uuid.UUID, day int) (service.ItineraryDay, error)
	replaceDayStops func(ctx context.Context, id uuid.UUID, day int, stops []domain.Stop) (service.ItineraryDay, error)
	optimizeDay     func(ctx context.Context, id uuid.UUID, day int) (service.ItineraryDay, error)
}

func (m *mockItineraryServicer) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.create(ctx, it)
}
func (m *mockItineraryServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockItineraryServicer) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.update(ctx, it)
}
func (m *mockItineraryServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockItineraryServicer) GetDay(ctx context.Context, id uuid.UUID, day int) (service.ItineraryDay, error) {
	return m.getDay(ctx, id, day)
}
func (m *mockItineraryServicer) ReplaceDayStops(ctx context.Context, id uuid.UUID, day int, stops []domain.Stop) (service.ItineraryDay, error) {
	return m.replaceDayStops(ctx, id, day, stops)
}
func (m *mockItineraryServicer) OptimizeDay(ctx context.Context, id uuid.UUID, day int) (service.ItineraryDay, error) {
	return m.optimizeDay(ctx, id, day)
}

var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, id uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, id)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// servers bundles the mocks a test wants; nil fields are never called.
type servers struct {
	hubs        handler.HubServicer
	planner     handler.PlannerServicer
	itineraries handler.ItineraryServicer
	export      handler.ExportServicer
}

func newRouter(s servers) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewRouter(handler.NewServer(s.hubs, s.planner, s.itineraries, s.export, logger))
}

// do serves one request and returns the recorder. body may be empty.
func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}
