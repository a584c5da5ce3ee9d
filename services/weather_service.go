package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"shoreSquadAPI/internal/types/weather"
)

// DefaultWeatherDelay mirrors the fixed simulated latency of the original
// mock fetch.
const DefaultWeatherDelay = 1500 * time.Millisecond

type WeatherService struct {
	provider weather.Provider
}

func NewWeatherService(provider weather.Provider) *WeatherService {
	return &WeatherService{provider: provider}
}

// GetWeather fetches a snapshot from the configured provider. The report
// always carries exactly five forecast entries or the call fails.
func (s *WeatherService) GetWeather(ctx context.Context, area string) (weather.Report, error) {
	report, err := s.provider.Fetch(ctx, area)
	if err != nil {
		return weather.Report{}, fmt.Errorf("fetch weather: %w", err)
	}
	if len(report.Forecast) != weather.ForecastLen {
		return weather.Report{}, fmt.Errorf("provider returned %d forecast entries, want %d", len(report.Forecast), weather.ForecastLen)
	}
	return report, nil
}

// MockWeatherProvider regenerates plausible tropical conditions after a
// fixed simulated delay. No network involved; the delay keeps the client's
// loading states honest.
type MockWeatherProvider struct {
	delay time.Duration
	clock clockwork.Clock
}

func NewMockWeatherProvider(delay time.Duration, clock clockwork.Clock) *MockWeatherProvider {
	if delay < 0 {
		delay = DefaultWeatherDelay
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MockWeatherProvider{delay: delay, clock: clock}
}

var mockConditions = []string{
	"Partly Cloudy",
	"Sunny",
	"Thundery Showers",
	"Cloudy",
	"Light Rain",
	"Windy",
}

func (p *MockWeatherProvider) Fetch(ctx context.Context, area string) (weather.Report, error) {
	select {
	case <-p.clock.After(p.delay):
	case <-ctx.Done():
		return weather.Report{}, ctx.Err()
	}

	now := p.clock.Now()
	source := rand.NewSource(now.UnixNano())
	r := rand.New(source)

	condition := mockConditions[r.Intn(len(mockConditions))]
	report := weather.Report{
		Current: weather.Current{
			TemperatureC: 26 + r.Intn(7),
			Condition:    condition,
			Humidity:     60 + r.Intn(31),
			WindKmh:      8 + r.Intn(18),
		},
		Forecast: make([]weather.ForecastEntry, 0, weather.ForecastLen),
	}

	for i := 0; i < weather.ForecastLen; i++ {
		c := mockConditions[r.Intn(len(mockConditions))]
		report.Forecast = append(report.Forecast, weather.ForecastEntry{
			Label:     forecastLabel(now, i),
			HighC:     29 + r.Intn(5),
			LowC:      24 + r.Intn(4),
			Condition: c,
			Icon:      weather.IconFor(c),
		})
	}
	return report, nil
}

func forecastLabel(now time.Time, offset int) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	return now.AddDate(0, 0, offset).Format("Mon")
}
