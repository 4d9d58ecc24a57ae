package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. blank address, negative price, unparseable date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrRouteNotFound is returned when the routing provider answers with any
// status other than "OK". No trip is stored.
var ErrRouteNotFound = errors.New("route not found")

// ErrProviderUnavailable covers transport failures talking to the routing
// provider: connection errors, timeouts and non-2xx HTTP responses.
var ErrProviderUnavailable = errors.New("routing provider unavailable")

// ErrMalformedResponse is returned when the provider answers "OK" but the
// payload cannot be decoded or lacks routes[0].legs[0].distance.
var ErrMalformedResponse = errors.New("malformed routing response")

// ErrStoreUnavailable wraps database failures that are not ErrNotFound.
// Handlers should map this to HTTP 503.
var ErrStoreUnavailable = errors.New("store unavailable")
