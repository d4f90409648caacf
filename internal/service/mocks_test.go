package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/repo"
)

// ---- mock repos ------------------------------------------------------------

// mockHubRepo is a hand-written test double for repo.HubRepo.
type mockHubRepo struct {
	list      func(ctx context.Context) ([]domain.Hub, error)
	getByName func(ctx context.Context, name string) (domain.Hub, error)
}

func (m *mockHubRepo) List(ctx context.Context) ([]domain.Hub, error) {
	return m.list(ctx)
}
func (m *mockHubRepo) GetByName(ctx context.Context, name string) (domain.Hub, error) {
	return m.getByName(ctx, name)
}

var _ repo.HubRepo = (*mockHubRepo)(nil)

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
type mockItineraryRepo struct {
	create    func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	update    func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.create(ctx, it)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return m.update(ctx, it)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

// mockStopRepo is a hand-written test double for repo.StopRepo.
// replaceDay defaults to recording the call so tests can assert on it.
type mockStopRepo struct {
	listDays   func(ctx context.Context, id uuid.UUID) ([]domain.Day, error)
	listByDay  func(ctx context.Context, id uuid.UUID, day int) ([]domain.Stop, error)
	replaceDay func(ctx context.Context, id uuid.UUID, day int, stops []domain.Stop) error

	replaced [][]domain.Stop
}

func (m *mockStopRepo) ListDays(ctx context.Context, id uuid.UUID) ([]domain.Day, error) {
	if m.listDays == nil {
		return nil, nil
	}
	return m.listDays(ctx, id)
}
func (m *mockStopRepo) ListByDay(ctx context.Context, id uuid.UUID, day int) ([]domain.Stop, error) {
	return m.listByDay(ctx, id, day)
}
func (m *mockStopRepo) ReplaceDay(ctx context.Context, id uuid.UUID, day int, stops []domain.Stop) error {
	m.replaced = append(m.replaced, stops)
	if m.replaceDay == nil {
		return nil
	}
	return m.replaceDay(ctx, id, day, stops)
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

// ---- fixtures --------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// equatorHub sits at 0,0 so one degree of longitude is 111.2 km.
func equatorHub() domain.Hub {
	return domain.Hub{Name: "Equator", Coordinate: &domain.Coordinate{}}
}

// hubsWith returns a HubRepo that knows exactly the given hubs.
func hubsWith(hubs ...domain.Hub) *mockHubRepo {
	return &mockHubRepo{
		list: func(context.Context) ([]domain.Hub, error) { return hubs, nil },
		getByName: func(_ context.Context, name string) (domain.Hub, error) {
			for _, h := range hubs {
				if h.Name == name {
					return h, nil
				}
			}
			return domain.Hub{}, domain.ErrNotFound
		},
	}
}

func stopAt(name string, lat, lon float64) domain.Stop {
	return domain.Stop{Name: name, Coordinate: domain.Coordinate{Lat: lat, Lon: lon}}
}
