package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/bike-logbook/internal/domain"
)

func TestMetresToKilometres(t *testing.T) {
	cases := []struct {
		metres int64
		want   string
	}{
		{5000, "5"},
		{5049, "5"},
		{5050, "5.1"},
		{5051, "5.1"},
		{12345, "12.3"},
		{49, "0"},
		{50, "0.1"},
		{0, "0"},
	}
	for _, tc := range cases {
		got := domain.MetresToKilometres(tc.metres)
		assert.Equal(t, tc.want, got.String(), "metres=%d", tc.metres)
	}
}

func TestParseTripDate(t *testing.T) {
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-06-01", "2025-06-01T00:00:00Z", "2025-06-01T21:10:00-07:00"} {
		got, err := domain.ParseTripDate(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "%s -> %v", in, got)
	}
}

func TestParseTripDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "06/01/2025", "2025-13-01"} {
		_, err := domain.ParseTripDate(in)
		assert.ErrorIs(t, err, domain.ErrValidation, "input %q", in)
	}
}

func TestWeeklyWindow(t *testing.T) {
	now := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC) // crosses a month boundary

	from, to := domain.WeeklyWindow(now, time.UTC)

	assert.Equal(t, "2025-02-22", from.Format(domain.DateLayout))
	assert.Equal(t, "2025-03-01", to.Format(domain.DateLayout))
}

func TestInWindow(t *testing.T) {
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	assert.True(t, domain.InWindow(from, from, to))
	assert.True(t, domain.InWindow(to, from, to))
	assert.True(t, domain.InWindow(to.Add(15*time.Hour), from, to), "clock part is ignored")
	assert.False(t, domain.InWindow(from.AddDate(0, 0, -1), from, to))
	assert.False(t, domain.InWindow(to.AddDate(0, 0, 1), from, to))
}

func TestWeeklySummary_Formatting(t *testing.T) {
	s := domain.WeeklySummary{
		TotalDistance: decimal.RequireFromString("5.5"),
		TotalPrice:    decimal.RequireFromString("30.00"),
	}

	assert.Equal(t, "5.5km", s.FormattedDistance())
	assert.Equal(t, "30PLN", s.FormattedPrice())
	assert.Equal(t, "0km", domain.WeeklySummary{}.FormattedDistance())
}

func TestNewPaginationParams(t *testing.T) {
	zero, two, big := 0, 2, 500

	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(nil, nil))
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, domain.NewPaginationParams(&zero, &zero))
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 100}, domain.NewPaginationParams(&two, &big))
	assert.Equal(t, 20, domain.NewPaginationParams(&two, nil).Offset())
}
