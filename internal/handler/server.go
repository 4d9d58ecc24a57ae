// Package handler implements the HTTP handlers for the Bike Logbook API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into resource files (health.go, trip.go, stats.go) but
// share the same Server struct and its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/bike-logbook/internal/domain"
	"github.com/pkordes/bike-logbook/internal/handler/gen"
)

// TripServicer defines the trip operations the handlers depend on.
// Declared here, in the consumer package, so tests can inject a mock.
type TripServicer interface {
	Create(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

// StatsServicer defines the reporting operations the handlers depend on.
type StatsServicer interface {
	Weekly(ctx context.Context) (domain.WeeklySummary, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Wire it in main.go via gen.NewStrictHandlerWithOptions(server, nil, StrictOptions(log)).
type Server struct {
	trips TripServicer
	stats StatsServicer
}

var _ gen.StrictServerInterface = (*Server)(nil)

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, stats StatsServicer) *Server {
	return &Server{trips: trips, stats: stats}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// StrictOptions returns error handlers for the generated strict server that
// answer with the API's JSON error shape instead of plain text.
// Request errors (bad JSON, oversized body) become 400 or 413; unexpected
// handler errors are logged and become a 500 without internal detail.
func StrictOptions(log *slog.Logger) gen.StrictHTTPServerOptions {
	return gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			log.ErrorContext(r.Context(), "unhandled handler error",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		},
	}
}

// ParamErrorHandler is the chi wrapper's error handler for malformed path or
// query parameters.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, "bad_request", err.Error())
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}})
}
