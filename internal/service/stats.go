package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/bike-logbook/internal/domain"
	"github.com/pkordes/bike-logbook/internal/repo"
)

// StatsService computes reports over stored trips.
type StatsService struct {
	trips repo.TripRepo
	loc   *time.Location
	now   func() time.Time
}

// NewStatsService constructs a StatsService. loc decides which calendar day
// "today" is; now is the clock (nil means time.Now).
func NewStatsService(trips repo.TripRepo, loc *time.Location, now func() time.Time) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &StatsService{trips: trips, loc: loc, now: now}
}

// Weekly sums distance and price over trips dated from eight days ago up to
// yesterday, both days included. Today is never counted.
// The comparison is on calendar dates, so the time of day of the call does
// not move the boundaries.
func (s *StatsService) Weekly(ctx context.Context) (domain.WeeklySummary, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return domain.WeeklySummary{}, fmt.Errorf("service.StatsService.Weekly: %w", err)
	}

	from, to := domain.WeeklyWindow(s.now(), s.loc)
	summary := domain.WeeklySummary{
		From:          from,
		To:            to,
		TotalDistance: decimal.Zero,
		TotalPrice:    decimal.Zero,
	}
	for _, t := range trips {
		if !domain.InWindow(t.Date, from, to) {
			continue
		}
		summary.TripCount++
		summary.TotalDistance = summary.TotalDistance.Add(t.Distance)
		summary.TotalPrice = summary.TotalPrice.Add(t.Price)
	}
	return summary, nil
}
