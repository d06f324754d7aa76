package forecast

import (
	"fmt"
	"math"
	"time"
)

const (
	hoursPerDay = 24
	// noonOffset is the hourly index within a day sampled for humidity and wind.
	noonOffset = 12
	// TodayLabel labels the current-day view.
	TodayLabel = "Hoy"
)

// Weekdays are the display names indexed by time.Weekday (Sunday first).
var Weekdays = [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// DayView is one display record of the dashboard.
type DayView struct {
	Date                     string    `json:"date"`
	TemperatureMin           float64   `json:"temperatureMin"`
	TemperatureMax           float64   `json:"temperatureMax"`
	RainSum                  float64   `json:"rainSum"`
	WeatherCode              int       `json:"weatherCode"`
	Condition                Condition `json:"condition"`
	PrecipitationProbability int       `json:"precipitationProbability"`
	HourlyTemperature        []float64 `json:"hourlyTemperature"`
	HourlyTime               []string  `json:"hourlyTime"`
	Humidity                 int       `json:"humidity"`
	WindSpeed                int       `json:"windSpeed"`
}

// Current builds the view for day index 0.
func Current(p Payload) *DayView {
	if len(p.Daily.Time) == 0 {
		return nil
	}
	v := buildDay(p, 0)
	v.Date = TodayLabel
	return &v
}

// FutureDays builds one view per day after today. Short hourly tails yield
// shorter or empty slices.
func FutureDays(p Payload) []DayView {
	if len(p.Daily.Time) < 2 {
		return nil
	}
	days := make([]DayView, 0, len(p.Daily.Time)-1)
	for i := 1; i < len(p.Daily.Time); i++ {
		v := buildDay(p, i)
		v.Date = weekdayName(p.Daily.Time[i])
		days = append(days, v)
	}
	return days
}

func buildDay(p Payload, day int) DayView {
	start := day * hoursPerDay
	end := start + hoursPerDay

	code := intAt(p.Daily.WeatherCode, day)
	return DayView{
		TemperatureMin:           floatAt(p.Daily.TemperatureMin, day),
		TemperatureMax:           floatAt(p.Daily.TemperatureMax, day),
		RainSum:                  floatAt(p.Daily.RainSum, day),
		WeatherCode:              code,
		Condition:                ConditionFor(code),
		PrecipitationProbability: precipitationProbability(p, day, start, end),
		HourlyTemperature:        window(p.Hourly.Temperature, start, end),
		HourlyTime:               hourLabels(window(p.Hourly.Time, start, end)),
		Humidity:                 int(math.Round(floatAt(p.Hourly.RelativeHumidity, start+noonOffset))),
		WindSpeed:                int(math.Round(floatAt(p.Hourly.WindSpeed, start+noonOffset))),
	}
}

// precipitationProbability prefers the mean of the day's hourly values,
// then the daily mean, then 0.
func precipitationProbability(p Payload, day, start, end int) int {
	if p.Hourly.PrecipitationProbability != nil {
		slice := window(p.Hourly.PrecipitationProbability, start, end)
		if len(slice) == 0 {
			return 0
		}
		var sum float64
		for _, v := range slice {
			sum += v
		}
		return int(math.Round(sum / float64(len(slice))))
	}
	if p.Daily.PrecipitationProbabilityMean != nil {
		return int(math.Round(floatAt(p.Daily.PrecipitationProbabilityMean, day)))
	}
	return 0
}

func weekdayName(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return Weekdays[t.Weekday()]
}

var hourLayouts = []string{"2006-01-02T15:04", time.RFC3339, "2006-01-02T15:04:05"}

func hourLabels(times []string) []string {
	labels := make([]string, len(times))
	for i, ts := range times {
		labels[i] = ts
		for _, layout := range hourLayouts {
			if t, err := time.Parse(layout, ts); err == nil {
				labels[i] = fmt.Sprintf("%d:00", t.Hour())
				break
			}
		}
	}
	return labels
}

// window returns s[start:end] clipped to the bounds of s.
func window[T any](s []T, start, end int) []T {
	if start >= len(s) {
		return []T{}
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}

func floatAt(s []float64, i int) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func intAt(s []int, i int) int {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}
