// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into resource files
// (hub.go, plan.go, itinerary.go, export.go) but share the same Server struct
// so they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iotinerary/planner/internal/domain"
	"github.com/iotinerary/planner/internal/service"
)

// HubServicer defines the hub operations the handlers depend on.
// Interfaces live here, in the consumer package, so handler tests can inject
// mocks without a database.
type HubServicer interface {
	List(ctx context.Context) ([]domain.Hub, error)
}

// PlannerServicer evaluates and optimizes ad-hoc days.
type PlannerServicer interface {
	Metrics(ctx context.Context, req service.PlanRequest) (service.DayPlan, error)
	Optimize(ctx context.Context, req service.PlanRequest) (service.DayPlan, error)
}

// ItineraryServicer defines the itinerary operations the handlers depend on.
type ItineraryServicer interface {
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetDay(ctx context.Context, id uuid.UUID, day int) (service.ItineraryDay, error)
	ReplaceDayStops(ctx context.Context, id uuid.UUID, day int, stops []domain.Stop) (service.ItineraryDay, error)
	OptimizeDay(ctx context.Context, id uuid.UUID, day int) (service.ItineraryDay, error)
}

// ExportServicer defines the export operation the handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, itineraryID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the dependencies of every handler.
type Server struct {
	hubs        HubServicer
	planner     PlannerServicer
	itineraries ItineraryServicer
	export      ExportServicer
	logger      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(hubs HubServicer, planner PlannerServicer, itineraries ItineraryServicer, export ExportServicer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		hubs:        hubs,
		planner:     planner,
		itineraries: itineraries,
		export:      export,
		logger:      logger,
	}
}

// NewRouter returns a chi router serving every endpoint of s, with
// middlewares applied in the order given.
func NewRouter(s *Server, middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, requestBody("method not allowed"))
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Get("/hubs", s.ListHubs)

	r.Route("/plan", func(r chi.Router) {
		r.Post("/metrics", s.PlanMetrics)
		r.Post("/optimize", s.PlanOptimize)
	})

	r.Route("/itineraries", func(r chi.Router) {
		r.Post("/", s.CreateItinerary)
		r.Get("/", s.ListItineraries)

		r.Route("/{itineraryId}", func(r chi.Router) {
			r.Get("/", s.GetItinerary)
			r.Put("/", s.UpdateItinerary)
			r.Delete("/", s.DeleteItinerary)
			r.Get("/export", s.ExportItinerary)

			r.Route("/days/{day}", func(r chi.Router) {
				r.Get("/", s.GetItineraryDay)
				r.Put("/stops", s.ReplaceItineraryDayStops)
				r.Post("/optimize", s.OptimizeItineraryDay)
			})
		})
	})

	return r
}
