package services

//go:generate mockgen -source=forecast.go -destination=forecast_mock.go -package=services

import (
	"context"
	"fmt"

	"github.com/sbilibin2017/clima-dashboard/internal/forecast"
	"github.com/sbilibin2017/clima-dashboard/internal/logger"
)

// maxForecastDays is how many future days the dashboard shows.
const maxForecastDays = 7

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) (*forecast.Location, error)
}

// ForecastProvider fetches a raw forecast payload.
type ForecastProvider interface {
	GetForecast(ctx context.Context, latitude, longitude float64) (*forecast.Payload, error)
}

// ForecastQuery selects a place either by name or by coordinates.
type ForecastQuery struct {
	City      string
	Latitude  *float64
	Longitude *float64
}

// ForecastResult is the dashboard view of a place.
type ForecastResult struct {
	Location forecast.Location  `json:"location"`
	Current  *forecast.DayView  `json:"current"`
	Days     []forecast.DayView `json:"days"`
}

// ForecastService combines geocoding, the forecast API and the view builder.
type ForecastService struct {
	geocoder Geocoder
	provider ForecastProvider
}

// NewForecastService creates a new ForecastService instance.
func NewForecastService(geocoder Geocoder, provider ForecastProvider) *ForecastService {
	return &ForecastService{geocoder: geocoder, provider: provider}
}

// GetForecast returns today's view and up to seven future days. Upstream
// failures are returned as is.
func (svc *ForecastService) GetForecast(ctx context.Context, q ForecastQuery) (*ForecastResult, error) {
	var loc forecast.Location
	switch {
	case q.Latitude != nil && q.Longitude != nil:
		loc = forecast.Location{Name: q.City, Latitude: *q.Latitude, Longitude: *q.Longitude}
	case q.City != "":
		found, err := svc.geocoder.Search(ctx, q.City)
		if err != nil {
			return nil, err
		}
		if found == nil {
			logger.Log.Warnw("location not found", "city", q.City)
			return nil, fmt.Errorf("%w: location %q", ErrNotFound, q.City)
		}
		loc = *found
	default:
		return nil, fmt.Errorf("%w: city or lat/lon is required", ErrValidation)
	}

	payload, err := svc.provider.GetForecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, err
	}

	days := forecast.FutureDays(*payload)
	if len(days) > maxForecastDays {
		days = days[:maxForecastDays]
	}

	return &ForecastResult{
		Location: loc,
		Current:  forecast.Current(*payload),
		Days:     days,
	}, nil
}
