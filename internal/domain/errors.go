package domain

import "errors"

// Domain error taxonomy. Handlers translate these into the
// {"Errors": ...} response bodies with the matching status codes.
var (
	ErrValidation    = errors.New("missing or malformed arguments")
	ErrAuth          = errors.New("authentication required")
	ErrPermission    = errors.New("operation not permitted")
	ErrNotFound      = errors.New("not found")
	ErrDuplicateItem = errors.New("item already in order")
	ErrMalformedFeed = errors.New("malformed price-list feed")
	ErrFetch         = errors.New("could not fetch price-list feed")
)
