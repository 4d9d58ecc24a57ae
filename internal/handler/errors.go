package handler

import (
	"strings"

	"github.com/pkordes/bike-logbook/internal/domain"
	"github.com/pkordes/bike-logbook/internal/handler/gen"
)

// notFoundBody returns an ErrorResponse for a missing resource.
func notFoundBody(message string) gen.ErrorResponse {
	return errorBody("not_found", message)
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is the text following the wrapped domain.ErrValidation.
func validationBody(err error) gen.ErrorResponse {
	return errorBody("validation_error", detailAfter(err, domain.ErrValidation))
}

// requestBody returns an ErrorResponse for a request rejected before it
// reached the service layer (e.g. missing body).
func requestBody(message string) gen.ErrorResponse {
	return errorBody("validation_error", message)
}

func routeNotFoundBody() gen.ErrorResponse {
	return errorBody("route_not_found", "can't find the route")
}

func providerUnavailableBody() gen.ErrorResponse {
	return errorBody("provider_unavailable", "routing provider unavailable, try again later")
}

func malformedResponseBody() gen.ErrorResponse {
	return errorBody("malformed_provider_response", "routing provider returned an unexpected response")
}

func storeUnavailableBody() gen.UnavailableJSONResponse {
	return gen.UnavailableJSONResponse(errorBody("store_unavailable", "storage unavailable, try again later"))
}

func errorBody(code, message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}}
}

// detailAfter extracts the human-readable part that follows sentinel in a
// wrapped error chain, e.g.
// "service.TripService.Create: validation error: price must not be negative"
// -> "price must not be negative".
func detailAfter(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
