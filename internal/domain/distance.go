package domain

import "github.com/shopspring/decimal"

var metresPerKilometre = decimal.NewFromInt(1000)

// MetresToKilometres converts a leg distance reported in metres to kilometres
// rounded to one decimal place, halves rounded away from zero.
// 5000 -> 5.0, 5049 -> 5.0, 5050 -> 5.1.
func MetresToKilometres(metres int64) decimal.Decimal {
	// decimal.Round rounds half away from zero, and the division is exact
	// for integer metres, so there is no float error near the .x5 boundary.
	return decimal.NewFromInt(metres).Div(metresPerKilometre).Round(1)
}
