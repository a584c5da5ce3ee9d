package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"shoreSquadAPI/internal/types/geo"
)

const defaultBaseURL = "http://ip-api.com/json"

// Client implements Locator using an ip-api style lookup endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an IP geolocation client. An empty baseURL selects the
// public ip-api endpoint.
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

// Locate resolves ip to a coordinate. A "fail" status from the provider is
// an error; the resolver above decides what to fall back to.
func (c *Client) Locate(ctx context.Context, ip string) (geo.Coordinate, error) {
	u := fmt.Sprintf("%s/%s?fields=status,message,lat,lon", c.baseURL, url.PathEscape(ip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("locate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return geo.Coordinate{}, fmt.Errorf("locate API error: status %d: %s", resp.StatusCode, body)
	}

	var lookup lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookup); err != nil {
		return geo.Coordinate{}, fmt.Errorf("decode response: %w", err)
	}

	if lookup.Status != "success" {
		return geo.Coordinate{}, fmt.Errorf("locate failed: %s", lookup.Message)
	}
	return geo.Coordinate{Lat: lookup.Lat, Lng: lookup.Lon}, nil
}

type lookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
