package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Units appended to the weekly totals.
const (
	DistanceUnit = "km"
	CurrencyUnit = "PLN"
)

// WeeklySummary is the computed, never-persisted distance/cost total over
// the trailing week window [From, To], both ends inclusive.
type WeeklySummary struct {
	From          time.Time
	To            time.Time
	TripCount     int
	TotalDistance decimal.Decimal
	TotalPrice    decimal.Decimal
}

// FormattedDistance renders the distance total as "<number>km", e.g. "5.5km".
func (s WeeklySummary) FormattedDistance() string {
	return s.TotalDistance.String() + DistanceUnit
}

// FormattedPrice renders the price total as "<number>PLN", e.g. "30PLN".
func (s WeeklySummary) FormattedPrice() string {
	return s.TotalPrice.String() + CurrencyUnit
}

// WeeklyWindow returns the inclusive calendar window [today-8, today-1] for
// the instant now evaluated in loc. Both bounds are midnight UTC dates so
// they compare directly against Trip.Date.
func WeeklyWindow(now time.Time, loc *time.Location) (from, to time.Time) {
	if loc != nil {
		now = now.In(loc)
	}
	today := CalendarDate(now)
	return today.AddDate(0, 0, -8), today.AddDate(0, 0, -1)
}

// InWindow reports whether the calendar date d lies within [from, to].
func InWindow(d, from, to time.Time) bool {
	d = CalendarDate(d)
	return !d.Before(from) && !d.After(to)
}
