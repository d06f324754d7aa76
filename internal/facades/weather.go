package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sbilibin2017/clima-dashboard/internal/forecast"
	"github.com/sbilibin2017/clima-dashboard/internal/logger"
)

const (
	DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"

	forecastDays = 14
	userAgent    = "clima-dashboard/1.0"
)

var (
	dailyFields  = []string{"temperature_2m_max", "temperature_2m_min", "rain_sum", "weathercode", "precipitation_probability_mean"}
	hourlyFields = []string{"temperature_2m", "relativehumidity_2m", "windspeed_10m", "precipitation_probability"}
)

// OpenMeteoFacade fetches forecasts from the Open-Meteo HTTP API.
type OpenMeteoFacade struct {
	client  *http.Client
	baseURL string
}

// NewOpenMeteoFacade creates a facade; an empty baseURL means the public API.
func NewOpenMeteoFacade(client *http.Client, baseURL string) *OpenMeteoFacade {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	return &OpenMeteoFacade{client: client, baseURL: baseURL}
}

// GetForecast returns the 14-day daily/hourly payload for the coordinates.
func (f *OpenMeteoFacade) GetForecast(ctx context.Context, latitude, longitude float64) (*forecast.Payload, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("daily", strings.Join(dailyFields, ","))
	q.Set("hourly", strings.Join(hourlyFields, ","))
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(forecastDays))

	var payload forecast.Payload
	if err := getJSON(ctx, f.client, f.baseURL+"?"+q.Encode(), &payload); err != nil {
		logger.Log.Errorw("failed to fetch forecast from open-meteo",
			"latitude", latitude, "longitude", longitude, "error", err)
		return nil, err
	}
	return &payload, nil
}

// NominatimFacade geocodes free-text place names through OpenStreetMap Nominatim.
type NominatimFacade struct {
	client  *http.Client
	baseURL string
}

// NewNominatimFacade creates a facade; an empty baseURL means the public service.
// baseURL is the service root; a trailing /search endpoint is accepted and stripped.
func NewNominatimFacade(client *http.Client, baseURL string) *NominatimFacade {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	baseURL = strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/search")
	return &NominatimFacade{client: client, baseURL: baseURL}
}

type nominatimPlace struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// Search returns the best match for query, or nil when nothing matches.
func (f *NominatimFacade) Search(ctx context.Context, query string) (*forecast.Location, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", "1")
	q.Set("addressdetails", "1")

	var places []nominatimPlace
	if err := getJSON(ctx, f.client, f.baseURL+"/search?"+q.Encode(), &places); err != nil {
		logger.Log.Errorw("failed to geocode via nominatim", "query", query, "error", err)
		return nil, err
	}
	if len(places) == 0 {
		return nil, nil
	}

	place := places[0]
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", place.Lat, err)
	}
	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", place.Lon, err)
	}

	var parts []string
	for _, p := range []string{firstNonEmpty(place.Address.City, place.Address.Town, place.Address.Village),
		place.Address.County, place.Address.State, place.Address.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	name := strings.Join(parts, ", ")
	if name == "" {
		name = query
	}

	return &forecast.Location{Name: name, Latitude: lat, Longitude: lon}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func getJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, req.URL.Host)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
