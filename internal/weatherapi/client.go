package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shoreSquadAPI/internal/types/weather"
)

const defaultBaseURL = "https://api.data.gov.sg/v1/environment"

// Client implements weather.Provider against the data.gov.sg real-time
// environment endpoints. One report is assembled from two calls: the
// 24-hour forecast covers today, the 4-day forecast fills the rest of the
// five-slot outlook.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a live weather client. An empty baseURL selects the
// public data.gov.sg endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// Fetch assembles a full report. The area parameter is accepted for
// interface parity; the upstream feed is island-wide.
func (c *Client) Fetch(ctx context.Context, area string) (weather.Report, error) {
	day, err := c.dayOutlook(ctx)
	if err != nil {
		return weather.Report{}, fmt.Errorf("24-hour forecast: %w", err)
	}

	week, err := c.fourDayOutlook(ctx)
	if err != nil {
		return weather.Report{}, fmt.Errorf("4-day forecast: %w", err)
	}

	report := weather.Report{
		Current: weather.Current{
			TemperatureC: day.General.Temperature.mid(),
			Condition:    day.General.Forecast,
			Humidity:     day.General.RelativeHumidity.mid(),
			WindKmh:      day.General.Wind.Speed.mid(),
		},
		Forecast: make([]weather.ForecastEntry, 0, weather.ForecastLen),
	}

	report.Forecast = append(report.Forecast, weather.ForecastEntry{
		Label:     "Today",
		HighC:     day.General.Temperature.High,
		LowC:      day.General.Temperature.Low,
		Condition: day.General.Forecast,
		Icon:      weather.IconFor(day.General.Forecast),
	})

	for _, f := range week {
		if len(report.Forecast) == weather.ForecastLen {
			break
		}
		report.Forecast = append(report.Forecast, weather.ForecastEntry{
			Label:     dayLabel(f.Date),
			HighC:     f.Temperature.High,
			LowC:      f.Temperature.Low,
			Condition: f.Forecast,
			Icon:      weather.IconFor(f.Forecast),
		})
	}

	if len(report.Forecast) != weather.ForecastLen {
		return weather.Report{}, fmt.Errorf("assembled %d forecast entries, want %d", len(report.Forecast), weather.ForecastLen)
	}
	return report, nil
}

func (c *Client) dayOutlook(ctx context.Context) (dayItem, error) {
	var resp dayResponse
	if err := c.getJSON(ctx, c.baseURL+"/24-hour-weather-forecast", &resp); err != nil {
		return dayItem{}, err
	}
	if len(resp.Items) == 0 {
		return dayItem{}, fmt.Errorf("empty items")
	}
	return resp.Items[0], nil
}

func (c *Client) fourDayOutlook(ctx context.Context) ([]weekForecast, error) {
	var resp weekResponse
	if err := c.getJSON(ctx, c.baseURL+"/4-day-weather-forecast", &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("empty items")
	}
	return resp.Items[0].Forecasts, nil
}

func (c *Client) getJSON(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// dayLabel renders a forecast date as the short weekday the outlook strip
// shows. Unparseable dates fall back to the raw string.
func dayLabel(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon")
}

// data.gov.sg response types.

type dayResponse struct {
	Items []dayItem `json:"items"`
}

type dayItem struct {
	General general `json:"general"`
}

type general struct {
	Forecast         string    `json:"forecast"`
	RelativeHumidity valueband `json:"relative_humidity"`
	Temperature      valueband `json:"temperature"`
	Wind             wind      `json:"wind"`
}

type wind struct {
	Speed     valueband `json:"speed"`
	Direction string    `json:"direction"`
}

type weekResponse struct {
	Items []weekItem `json:"items"`
}

type weekItem struct {
	Forecasts []weekForecast `json:"forecasts"`
}

type weekForecast struct {
	Date        string    `json:"date"`
	Forecast    string    `json:"forecast"`
	Temperature valueband `json:"temperature"`
}

type valueband struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

func (v valueband) mid() int {
	return (v.Low + v.High) / 2
}
