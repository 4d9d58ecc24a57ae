package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bike-logbook/internal/domain"
	"github.com/pkordes/bike-logbook/internal/service"
)

// fixedNow is 2025-06-10 at 14:30 UTC.
var fixedNow = time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

func daysAgo(n int) time.Time {
	return time.Date(2025, 6, 10-n, 0, 0, 0, 0, time.UTC)
}

func statsTrip(date time.Time, distance, price string) domain.Trip {
	return domain.Trip{
		Date:     date,
		Distance: decimal.RequireFromString(distance),
		Price:    decimal.RequireFromString(price),
	}
}

func newStatsService(trips []domain.Trip, now time.Time, loc *time.Location) *service.StatsService {
	r := &mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) { return trips, nil },
	}
	return service.NewStatsService(r, loc, func() time.Time { return now })
}

func TestStatsService_Weekly_Empty(t *testing.T) {
	svc := newStatsService(nil, fixedNow, nil)

	got, err := svc.Weekly(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0km", got.FormattedDistance())
	assert.Equal(t, "0PLN", got.FormattedPrice())
	assert.Zero(t, got.TripCount)
}

func TestStatsService_Weekly_SumsInWindowTrips(t *testing.T) {
	svc := newStatsService([]domain.Trip{
		statsTrip(daysAgo(2), "3.5", "10"),
		statsTrip(daysAgo(4), "2.0", "20"),
	}, fixedNow, nil)

	got, err := svc.Weekly(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "5.5km", got.FormattedDistance())
	assert.Equal(t, "30PLN", got.FormattedPrice())
	assert.Equal(t, 2, got.TripCount)
}

func TestStatsService_Weekly_Boundaries(t *testing.T) {
	cases := []struct {
		name     string
		date     time.Time
		included bool
	}{
		{"today", daysAgo(0), false},
		{"one day ago", daysAgo(1), true},
		{"eight days ago", daysAgo(8), true},
		{"nine days ago", daysAgo(9), false},
		{"tomorrow", daysAgo(-1), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newStatsService([]domain.Trip{statsTrip(tc.date, "4.7", "5")}, fixedNow, nil)

			got, err := svc.Weekly(context.Background())

			require.NoError(t, err)
			if tc.included {
				assert.Equal(t, "4.7km", got.FormattedDistance())
				assert.Equal(t, 1, got.TripCount)
			} else {
				assert.Equal(t, "0km", got.FormattedDistance())
				assert.Zero(t, got.TripCount)
			}
		})
	}
}

func TestStatsService_Weekly_TimeOfDayDoesNotMoveWindow(t *testing.T) {
	trips := []domain.Trip{
		statsTrip(daysAgo(1), "1.0", "1"),
		statsTrip(daysAgo(8), "2.0", "2"),
	}
	for _, now := range []time.Time{
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC),
	} {
		svc := newStatsService(trips, now, nil)

		got, err := svc.Weekly(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "3km", got.FormattedDistance(), "now=%v", now)
	}
}

func TestStatsService_Weekly_UsesConfiguredLocation(t *testing.T) {
	// 23:30 UTC on June 9 is already June 10 in Warsaw (UTC+2 in summer).
	warsaw := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC)
	trips := []domain.Trip{statsTrip(daysAgo(1), "1.5", "3")} // June 9

	utc, err := newStatsService(trips, now, time.UTC).Weekly(context.Background())
	require.NoError(t, err)
	local, err := newStatsService(trips, now, warsaw).Weekly(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0km", utc.FormattedDistance(), "June 9 is today in UTC")
	assert.Equal(t, "1.5km", local.FormattedDistance(), "June 9 is yesterday in Warsaw")
}

func TestStatsService_Weekly_ReportsWindow(t *testing.T) {
	svc := newStatsService(nil, fixedNow, nil)

	got, err := svc.Weekly(context.Background())

	require.NoError(t, err)
	assert.True(t, got.From.Equal(daysAgo(8)), "from=%v", got.From)
	assert.True(t, got.To.Equal(daysAgo(1)), "to=%v", got.To)
}

func TestStatsService_Weekly_DecimalSumsAreExact(t *testing.T) {
	svc := newStatsService([]domain.Trip{
		statsTrip(daysAgo(1), "0.1", "0.10"),
		statsTrip(daysAgo(2), "0.2", "0.20"),
	}, fixedNow, nil)

	got, err := svc.Weekly(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0.3km", got.FormattedDistance())
	assert.Equal(t, "0.3PLN", got.FormattedPrice())
}

func TestStatsService_Weekly_StoreError(t *testing.T) {
	r := &mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) {
			return nil, fmt.Errorf("repo: %w", domain.ErrStoreUnavailable)
		},
	}
	svc := service.NewStatsService(r, nil, func() time.Time { return fixedNow })

	_, err := svc.Weekly(context.Background())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
