package handler

import (
	"context"
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/bike-logbook/internal/domain"
	"github.com/pkordes/bike-logbook/internal/handler/gen"
)

// GetWeeklyStats handles GET /stats/weekly.
func (s *Server) GetWeeklyStats(ctx context.Context, _ gen.GetWeeklyStatsRequestObject) (gen.GetWeeklyStatsResponseObject, error) {
	summary, err := s.stats.Weekly(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return gen.GetWeeklyStats503JSONResponse{UnavailableJSONResponse: storeUnavailableBody()}, nil
		}
		return nil, err
	}

	return gen.GetWeeklyStats200JSONResponse{
		TotalDistance: summary.FormattedDistance(),
		TotalPrice:    summary.FormattedPrice(),
		From:          openapi_types.Date{Time: summary.From},
		To:            openapi_types.Date{Time: summary.To},
		TripCount:     summary.TripCount,
	}, nil
}
