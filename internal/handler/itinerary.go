package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/iotinerary/planner/internal/domain"
)

// CreateItinerary handles POST /itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var body ItineraryRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.itineraries.Create(r.Context(), requestToItinerary(body))
	if err != nil {
		s.writeError(w, r, err, "itinerary not found")
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// ListItineraries handles GET /itineraries.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	q, err := bindListItinerariesParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	params := domain.NewPaginationParams(q.Page, q.Limit)
	its, total, err := s.itineraries.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "itinerary not found")
		return
	}

	data := make([]ItineraryResponse, len(its))
	for i, it := range its {
		data[i] = itineraryToResponse(it)
	}
	writeJSON(w, http.StatusOK, ItineraryListResponse{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetItinerary handles GET /itineraries/{itineraryId}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathItineraryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	it, err := s.itineraries.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "itinerary not found")
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// UpdateItinerary handles PUT /itineraries/{itineraryId}.
func (s *Server) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathItineraryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	var body ItineraryRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	it := requestToItinerary(body)
	it.ID = id
	updated, err := s.itineraries.Update(r.Context(), it)
	if err != nil {
		s.writeError(w, r, err, "itinerary not found")
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// DeleteItinerary handles DELETE /itineraries/{itineraryId}.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathItineraryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	if err := s.itineraries.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "itinerary not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetItineraryDay handles GET /itineraries/{itineraryId}/days/{day}.
func (s *Server) GetItineraryDay(w http.ResponseWriter, r *http.Request) {
	id, day, ok := dayPath(w, r)
	if !ok {
		return
	}

	d, err := s.itineraries.GetDay(r.Context(), id, day)
	if err != nil {
		s.writeError(w, r, err, "itinerary day not found")
		return
	}
	writeJSON(w, http.StatusOK, itineraryDayToResponse(d))
}

// ReplaceItineraryDayStops handles PUT /itineraries/{itineraryId}/days/{day}/stops.
// The stops are stored in the order given.
func (s *Server) ReplaceItineraryDayStops(w http.ResponseWriter, r *http.Request) {
	id, day, ok := dayPath(w, r)
	if !ok {
		return
	}
	var body ReplaceStopsBody
	if !decodeJSON(w, r, &body) {
		return
	}
	stops, ok := bindStops(w, body.Stops)
	if !ok {
		return
	}

	d, err := s.itineraries.ReplaceDayStops(r.Context(), id, day, stops)
	if err != nil {
		s.writeError(w, r, err, "itinerary day not found")
		return
	}
	writeJSON(w, http.StatusOK, itineraryDayToResponse(d))
}

// OptimizeItineraryDay handles POST /itineraries/{itineraryId}/days/{day}/optimize.
func (s *Server) OptimizeItineraryDay(w http.ResponseWriter, r *http.Request) {
	id, day, ok := dayPath(w, r)
	if !ok {
		return
	}

	d, err := s.itineraries.OptimizeDay(r.Context(), id, day)
	if err != nil {
		s.writeError(w, r, err, "itinerary day not found")
		return
	}
	writeJSON(w, http.StatusOK, itineraryDayToResponse(d))
}

// dayPath binds both path parameters of a day route, writing 400 and
// reporting false if either is malformed.
func dayPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, bool) {
	id, err := pathItineraryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return id, 0, false
	}
	day, err := pathDay(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return id, 0, false
	}
	return id, day, true
}
