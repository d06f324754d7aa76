// Package forecast turns an Open-Meteo daily/hourly payload into per-day display records.
package forecast

// Payload is the subset of an Open-Meteo forecast response the dashboard uses.
// Arrays are parallel: Daily.X[i] belongs to Daily.Time[i], Hourly.X[j] to Hourly.Time[j].
type Payload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Daily     Daily   `json:"daily"`
	Hourly    Hourly  `json:"hourly"`
}

// Daily holds per-day series.
type Daily struct {
	Time                         []string  `json:"time"`
	TemperatureMax               []float64 `json:"temperature_2m_max"`
	TemperatureMin               []float64 `json:"temperature_2m_min"`
	RainSum                      []float64 `json:"rain_sum"`
	WeatherCode                  []int     `json:"weathercode"`
	PrecipitationProbabilityMean []float64 `json:"precipitation_probability_mean,omitempty"`
}

// Hourly holds per-hour series.
type Hourly struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	RelativeHumidity         []float64 `json:"relativehumidity_2m"`
	WindSpeed                []float64 `json:"windspeed_10m"`
	PrecipitationProbability []float64 `json:"precipitation_probability,omitempty"`
}

// Location is a geocoded place.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
