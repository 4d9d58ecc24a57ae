// Package service contains the business logic for the Bike Logbook API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// routing calls. No SQL or HTTP lives here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pkordes/bike-logbook/internal/domain"
	"github.com/pkordes/bike-logbook/internal/metrics"
	"github.com/pkordes/bike-logbook/internal/repo"
)

// RouteFinder resolves the distance in metres between two addresses.
// routing.Client and routing.CachedFinder both satisfy it.
type RouteFinder interface {
	Distance(ctx context.Context, origin, destination string) (int64, error)
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo   repo.TripRepo
	routes RouteFinder
	log    *slog.Logger
}

// NewTripService constructs a TripService. A nil logger uses slog.Default().
func NewTripService(r repo.TripRepo, routes RouteFinder, log *slog.Logger) *TripService {
	if log == nil {
		log = slog.Default()
	}
	return &TripService{repo: r, routes: routes, log: log}
}

// Create validates the input, resolves the cycling distance and stores the
// trip. Nothing is written unless the route lookup succeeds.
//
// Returns domain.ErrValidation for bad input, and passes through
// domain.ErrRouteNotFound, domain.ErrProviderUnavailable,
// domain.ErrMalformedResponse and domain.ErrStoreUnavailable.
func (s *TripService) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	trip, err := validateTrip(in)
	if err != nil {
		return domain.Trip{}, err
	}

	// The provider's origin is the trip's end address and its destination the
	// start address. Cycling distances are close to symmetric, so this has not
	// been changed.
	// TODO: confirm with product whether origin/destination should be swapped back.
	metres, err := s.routes.Distance(ctx, trip.EndAddress, trip.StartAddress)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	trip.Distance = domain.MetresToKilometres(metres)

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	metrics.TripsCreatedTotal.Inc()
	s.log.InfoContext(ctx, "trip created",
		"trip_id", created.ID,
		"date", created.Date.Format(domain.DateLayout),
		"distance_km", created.Distance.String(),
		"route_metres", metres,
	)
	return created, nil
}

// GetByID returns a single trip.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListPaged returns one page of trips and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Bounds of the trips.price NUMERIC(10,2) column.
var (
	maxPrice   = decimal.New(1, 8)
	priceScale = int32(2)
)

// validateTrip enforces the input rules and returns the trip to store,
// without a distance.
//   - Start and end addresses must be non-blank.
//   - Date must parse as a calendar date or an RFC 3339 timestamp.
//   - Price must not be negative and must fit the NUMERIC(10,2) column.
func validateTrip(in domain.TripInput) (domain.Trip, error) {
	start := strings.TrimSpace(in.StartAddress)
	end := strings.TrimSpace(in.EndAddress)
	if start == "" {
		return domain.Trip{}, fmt.Errorf("%w: start_address is required", domain.ErrValidation)
	}
	if end == "" {
		return domain.Trip{}, fmt.Errorf("%w: end_address is required", domain.ErrValidation)
	}
	if in.Price.IsNegative() {
		return domain.Trip{}, fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if in.Price.GreaterThanOrEqual(maxPrice) {
		return domain.Trip{}, fmt.Errorf("%w: price must be below %s", domain.ErrValidation, maxPrice)
	}
	if !in.Price.Equal(in.Price.Truncate(priceScale)) {
		return domain.Trip{}, fmt.Errorf("%w: price must have at most %d decimal places", domain.ErrValidation, priceScale)
	}
	date, err := domain.ParseTripDate(in.Date)
	if err != nil {
		return domain.Trip{}, err
	}
	return domain.Trip{
		StartAddress: start,
		EndAddress:   end,
		Date:         date,
		Price:        in.Price,
	}, nil
}
