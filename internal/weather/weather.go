// Package weather fetches current conditions for the campus city.
package weather

import (
	"context"
	"errors"
)

// ErrUnavailable is returned for any provider failure: network error,
// non-success status, or a body without the expected fields.
var ErrUnavailable = errors.New("weather unavailable")

// Report is the current weather for a city.
type Report struct {
	City        string
	Description string
	TempC       float64
}

// Provider returns current weather for a city name.
type Provider interface {
	Current(ctx context.Context, city string) (*Report, error)
}
