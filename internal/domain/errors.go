package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// itinerary, day, or hub does not exist.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a business
// rule (duplicate stop names, day outside the date range, bad coordinates).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
