package weather

import (
	"context"
	"strings"
)

// Current is the present-moment reading shown in the hero card.
type Current struct {
	TemperatureC int    `json:"temperature_c"`
	Condition    string `json:"condition"`
	Humidity     int    `json:"humidity"`
	WindKmh      int    `json:"wind_kmh"`
}

// ForecastEntry is one tile in the five-slot outlook strip.
type ForecastEntry struct {
	Label     string `json:"label"`
	HighC     int    `json:"high_c"`
	LowC      int    `json:"low_c"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}

// Report bundles the current reading with exactly five forecast entries.
// A report is replaced wholesale on every fetch, never merged.
type Report struct {
	Current  Current         `json:"current"`
	Forecast []ForecastEntry `json:"forecast"`
}

// ForecastLen is how many outlook tiles the client renders.
const ForecastLen = 5

// Provider produces a weather report for a named area. Implementations may
// take a while (the mock one deliberately does) so they respect ctx.
type Provider interface {
	Fetch(ctx context.Context, area string) (Report, error)
}

// IconFor maps a condition label to the glyph the forecast strip shows.
func IconFor(condition string) string {
	c := strings.ToLower(condition)
	switch {
	case strings.Contains(c, "thunder"):
		return "⛈️"
	case strings.Contains(c, "shower"), strings.Contains(c, "rain"):
		return "🌧️"
	case strings.Contains(c, "haz"), strings.Contains(c, "mist"):
		return "🌫️"
	case strings.Contains(c, "wind"):
		return "💨"
	case strings.Contains(c, "fair"), strings.Contains(c, "sunny"):
		return "☀️"
	case strings.Contains(c, "cloud"):
		return "⛅"
	}
	return "⛅"
}
