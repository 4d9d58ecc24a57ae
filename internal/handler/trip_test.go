package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bike-logbook/internal/domain"
	"github.com/pkordes/bike-logbook/internal/handler"
	"github.com/pkordes/bike-logbook/internal/handler/gen"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create    func(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
}

func (m *mockTripServicer) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the generated chi
// router, the same way main.go does.
func newHTTPHandler(trips handler.TripServicer, stats handler.StatsServicer) http.Handler {
	srv := handler.NewServer(trips, stats)
	opts := handler.StrictOptions(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	return gen.HandlerWithOptions(
		gen.NewStrictHandlerWithOptions(srv, nil, opts),
		gen.ChiServerOptions{ErrorHandlerFunc: handler.ParamErrorHandler},
	)
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:           uuid.New(),
		StartAddress: "Rynek Główny 1, Kraków",
		EndAddress:   "Wawel 5, Kraków",
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Distance:     decimal.RequireFromString("5.1"),
		Price:        decimal.RequireFromString("12.50"),
		CreatedAt:    time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func validBody() map[string]any {
	return map[string]any{
		"start_address": "Rynek Główny 1, Kraków",
		"end_address":   "Wawel 5, Kraków",
		"date":          "2025-06-01",
		"price":         12.5,
	}
}

func postTrip(t *testing.T, svc handler.TripServicer, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHTTPHandler(svc, nil).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) gen.ErrorDetail {
	t.Helper()
	var resp gen.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var got domain.TripInput
	svc := &mockTripServicer{
		create: func(_ context.Context, in domain.TripInput) (domain.Trip, error) {
			got = in
			return fixture, nil
		},
	}

	rec := postTrip(t, svc, jsonBody(t, validBody()))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Rynek Główny 1, Kraków", got.StartAddress)
	assert.Equal(t, "Wawel 5, Kraków", got.EndAddress)
	assert.Equal(t, "2025-06-01", got.Date)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.5")))

	var resp gen.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.Id)
	assert.InDelta(t, 5.1, resp.Distance, 1e-9)
	assert.InDelta(t, 12.5, resp.Price, 1e-9)
	assert.Equal(t, "2025-06-01", resp.Date.Format(domain.DateLayout))
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.TripInput) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: start_address is required", domain.ErrValidation)
		},
	}

	rec := postTrip(t, svc, jsonBody(t, validBody()))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "validation_error", detail.Code)
	assert.Equal(t, "start_address is required", detail.Message)
}

func TestCreateTrip_ProviderErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantBody string
	}{
		{domain.ErrRouteNotFound, http.StatusUnprocessableEntity, "route_not_found"},
		{domain.ErrProviderUnavailable, http.StatusBadGateway, "provider_unavailable"},
		{domain.ErrMalformedResponse, http.StatusBadGateway, "malformed_provider_response"},
		{domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "store_unavailable"},
	}
	for _, tc := range cases {
		t.Run(tc.wantBody, func(t *testing.T) {
			svc := &mockTripServicer{
				create: func(_ context.Context, _ domain.TripInput) (domain.Trip, error) {
					return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", tc.err)
				},
			}

			rec := postTrip(t, svc, jsonBody(t, validBody()))

			require.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantBody, decodeError(t, rec).Code)
		})
	}
}

func TestCreateTrip_500_UnexpectedErrorHidesDetail(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.TripInput) (domain.Trip, error) {
			return domain.Trip{}, errors.New("password=hunter2 leaked")
		},
	}

	rec := postTrip(t, svc, jsonBody(t, validBody()))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Equal(t, "internal_error", decodeError(t, rec).Code)
}

func TestCreateTrip_400_MalformedJSON(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.TripInput) (domain.Trip, error) {
			t.Fatal("service must not be called for malformed JSON")
			return domain.Trip{}, nil
		},
	}

	rec := postTrip(t, svc, strings.NewReader(`{"start_address":`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_request", decodeError(t, rec).Code)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200_WithPagination(t *testing.T) {
	var got domain.PaginationParams
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			got = p
			return []domain.Trip{tripFixture(), tripFixture()}, 7, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips?page=2&limit=2", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 2}, got)

	var resp gen.TripList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, gen.Pagination{Page: 2, Limit: 2, Total: 7}, resp.Pagination)
}

func TestListTrips_200_EmptyIsArray(t *testing.T) {
	svc := &mockTripServicer{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return []domain.Trip{}, 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestListTrips_400_BadQueryParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/trips?page=abc", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(&mockTripServicer{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /trips/{id} -------------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp gen.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.StartAddress, resp.StartAddress)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestGetTrip_400_InvalidUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/trips/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(&mockTripServicer{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
