package handler

import "net/http"

// ListHubs handles GET /hubs.
func (s *Server) ListHubs(w http.ResponseWriter, r *http.Request) {
	hubs, err := s.hubs.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "hub not found")
		return
	}
	writeJSON(w, http.StatusOK, hubs)
}
