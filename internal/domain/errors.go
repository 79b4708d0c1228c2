package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a presence
// check (e.g. missing facility name or location).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrStorage labels any failure reported by the database: connection loss,
// constraint violation, malformed SQL. The repo layer wraps every driver error
// with it so callers can tell storage failures from not-found results.
var ErrStorage = errors.New("storage error")
