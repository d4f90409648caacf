package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/iotinerary/planner/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"day", "date", "day_status", "position", "stop_name",
	"lat", "lon", "visit_minutes", "drive_minutes", "locked",
}

// ExportItinerary handles GET /itineraries/{itineraryId}/export.
// It returns one row per stop. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathItineraryID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	format, err := bindExportFormat(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "itinerary not found")
		return
	}

	if format == ExportFormatCSV {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="itinerary-%s.csv"`, id))
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

func buildJSONRows(rows []domain.ExportRow) []ExportRowResponse {
	out := make([]ExportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRowResponse{
			Day:          r.Day,
			Date:         mustParseDate(r.Date),
			DayStatus:    r.DayStatus,
			Position:     r.Position,
			StopName:     r.StopName,
			Lat:          r.Lat,
			Lon:          r.Lon,
			VisitMinutes: r.VisitMinutes,
			DriveMinutes: r.DriveMinutes,
			Locked:       r.Locked,
		})
	}
	return out
}

// writeCSV encodes rows as CSV with a header row. The body is buffered so a
// Content-Length can be sent.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail.
	_ = cw.Write(csvHeaders)
	for _, r := range rows {
		_ = cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Coordinates keep full precision.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		strconv.Itoa(r.Day),
		r.Date,
		string(r.DayStatus),
		strconv.Itoa(r.Position),
		r.StopName,
		strconv.FormatFloat(r.Lat, 'f', -1, 64),
		strconv.FormatFloat(r.Lon, 'f', -1, 64),
		strconv.Itoa(r.VisitMinutes),
		strconv.Itoa(r.DriveMinutes),
		strconv.FormatBool(r.Locked),
	}
}

// mustParseDate parses an "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}
