package handler

import (
	"context"
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/bike-logbook/internal/domain"
	"github.com/pkordes/bike-logbook/internal/handler/gen"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(ctx context.Context, req gen.CreateTripRequestObject) (gen.CreateTripResponseObject, error) {
	if req.Body == nil {
		return gen.CreateTrip422JSONResponse(requestBody("request body is required")), nil
	}

	created, err := s.trips.Create(ctx, requestToTripInput(req.Body))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return gen.CreateTrip422JSONResponse(validationBody(err)), nil
		case errors.Is(err, domain.ErrRouteNotFound):
			return gen.CreateTrip422JSONResponse(routeNotFoundBody()), nil
		case errors.Is(err, domain.ErrMalformedResponse):
			return gen.CreateTrip502JSONResponse(malformedResponseBody()), nil
		case errors.Is(err, domain.ErrProviderUnavailable):
			return gen.CreateTrip502JSONResponse(providerUnavailableBody()), nil
		case errors.Is(err, domain.ErrStoreUnavailable):
			return gen.CreateTrip503JSONResponse{UnavailableJSONResponse: storeUnavailableBody()}, nil
		}
		return nil, err
	}

	return gen.CreateTrip201JSONResponse(tripToResponse(created)), nil
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(ctx context.Context, req gen.ListTripsRequestObject) (gen.ListTripsResponseObject, error) {
	params := domain.NewPaginationParams(req.Params.Page, req.Params.Limit)
	trips, total, err := s.trips.ListPaged(ctx, params)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return gen.ListTrips503JSONResponse{UnavailableJSONResponse: storeUnavailableBody()}, nil
		}
		return nil, err
	}

	data := make([]gen.Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	return gen.ListTrips200JSONResponse{
		Data: data,
		Pagination: gen.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	}, nil
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(ctx context.Context, req gen.GetTripRequestObject) (gen.GetTripResponseObject, error) {
	trip, err := s.trips.GetByID(ctx, req.Id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return gen.GetTrip404JSONResponse(notFoundBody("trip not found")), nil
		case errors.Is(err, domain.ErrStoreUnavailable):
			return gen.GetTrip503JSONResponse{UnavailableJSONResponse: storeUnavailableBody()}, nil
		}
		return nil, err
	}

	return gen.GetTrip200JSONResponse(tripToResponse(trip)), nil
}

// --- mapping helpers --------------------------------------------------------

// requestToTripInput converts the request body into a domain.TripInput.
// The date is passed through as text; the service parses it.
func requestToTripInput(body *gen.CreateTripRequest) domain.TripInput {
	return domain.TripInput{
		StartAddress: body.StartAddress,
		EndAddress:   body.EndAddress,
		Date:         body.Date,
		Price:        decimal.NewFromFloat(body.Price),
	}
}

// tripToResponse converts a domain.Trip into the generated gen.Trip type.
func tripToResponse(t domain.Trip) gen.Trip {
	return gen.Trip{
		Id:           t.ID,
		StartAddress: t.StartAddress,
		EndAddress:   t.EndAddress,
		Date:         openapi_types.Date{Time: t.Date},
		Distance:     t.Distance.InexactFloat64(),
		Price:        t.Price.InexactFloat64(),
		CreatedAt:    t.CreatedAt,
	}
}
