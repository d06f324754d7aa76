package handlers

//go:generate mockgen -source=forecast.go -destination=forecast_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/services"
)

// ForecastGetter builds the dashboard forecast for a place.
type ForecastGetter interface {
	GetForecast(ctx context.Context, q services.ForecastQuery) (*services.ForecastResult, error)
}

// NewForecastHandler returns an HTTP handler serving today's weather and the next seven days.
// @Summary Forecast
// @Description Looks the place up by city name or coordinates and returns the dashboard views
// @Tags forecast
// @Produce json
// @Param city query string false "City name"
// @Param lat query number false "Latitude"
// @Param lon query number false "Longitude"
// @Success 200 {object} services.ForecastResult
// @Failure 400 {object} handlers.ErrorResponse "Missing or invalid location"
// @Failure 404 {object} handlers.ErrorResponse "Location not found"
// @Failure 500 {object} handlers.ErrorResponse "Weather provider error"
// @Router /api/forecast [get]
func NewForecastHandler(svc ForecastGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		q := services.ForecastQuery{City: query.Get("city")}

		if lat, lon := query.Get("lat"), query.Get("lon"); lat != "" || lon != "" {
			latitude, errLat := strconv.ParseFloat(lat, 64)
			longitude, errLon := strconv.ParseFloat(lon, 64)
			if errLat != nil || errLon != nil {
				writeError(w, http.StatusBadRequest, "lat and lon must both be numbers")
				return
			}
			q.Latitude, q.Longitude = &latitude, &longitude
		}

		result, err := svc.GetForecast(r.Context(), q)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrValidation):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, services.ErrNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			default:
				logger.Log.Errorw("forecast failed", "err", err)
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
