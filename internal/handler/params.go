package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Path and query parameters are bound with the same runtime helpers
// oapi-codegen emits, so their parsing and error messages match the
// OpenAPI document's parameter styles.

func pathItineraryID(r *http.Request) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "itineraryId", chi.URLParam(r, "itineraryId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return openapi_types.UUID{}, fmt.Errorf("invalid format for parameter itineraryId: %w", err)
	}
	return id, nil
}

func pathDay(r *http.Request) (int, error) {
	var day int
	err := runtime.BindStyledParameterWithOptions("simple", "day", chi.URLParam(r, "day"), &day,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid format for parameter day: %w", err)
	}
	return day, nil
}

// ListItinerariesParams holds the optional query parameters of GET /itineraries.
type ListItinerariesParams struct {
	Page  *int
	Limit *int
}

func bindListItinerariesParams(r *http.Request) (ListItinerariesParams, error) {
	var p ListItinerariesParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &p.Page); err != nil {
		return p, fmt.Errorf("invalid format for parameter page: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &p.Limit); err != nil {
		return p, fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	return p, nil
}

// ExportFormat selects the representation of an export.
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
)

func bindExportFormat(r *http.Request) (ExportFormat, error) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		return "", fmt.Errorf("invalid format for parameter format: %w", err)
	}
	if format == nil {
		return ExportFormatJSON, nil
	}
	switch f := ExportFormat(*format); f {
	case ExportFormatJSON, ExportFormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("format must be json or csv, got %q", *format)
}
