// Package domain contains the core data types for the Bike Logbook application.
// It is imported by every other internal package (repo, service, routing, handler)
// and depends only on uuid and decimal.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trip is a single logged bicycle ride between two addresses.
//
// Distance is always derived from the routing provider at creation time and
// is never accepted from the caller. Date carries a calendar date only; the
// time-of-day component is always midnight UTC.
type Trip struct {
	ID           uuid.UUID       `json:"id"`
	StartAddress string          `json:"start_address"`
	EndAddress   string          `json:"end_address"`
	Date         time.Time       `json:"date"`
	Distance     decimal.Decimal `json:"distance"` // kilometres, one decimal place
	Price        decimal.Decimal `json:"price"`    // PLN
	CreatedAt    time.Time       `json:"created_at"`
}

// TripInput is a candidate trip as supplied by a caller. Date is either a
// calendar date ("2025-06-01") or an RFC 3339 timestamp.
type TripInput struct {
	StartAddress string
	EndAddress   string
	Date         string
	Price        decimal.Decimal
}
