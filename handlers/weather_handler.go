package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"shoreSquadAPI/internal/geolocate"
	"shoreSquadAPI/middleware"
	"shoreSquadAPI/services"
)

type WeatherHandler struct {
	weatherService *services.WeatherService
	resolver       *geolocate.Resolver
}

func NewWeatherHandler(weatherService *services.WeatherService, resolver *geolocate.Resolver) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		resolver:       resolver,
	}
}

// GetWeather serves the snapshot for wherever the caller seems to be.
// Provider trouble is never a 500: the client gets a retryable 503 and
// decides when to try again.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	coord := h.resolver.Resolve(ctx, middleware.ClientIP(r))
	area := fmt.Sprintf("%.4f,%.4f", coord.Lat, coord.Lng)

	report, err := h.weatherService.GetWeather(ctx, area)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Caller went away mid-fetch, nothing to answer.
			return
		}
		log.Printf("Weather fetch failed: %v", err)
		middleware.ObserveWeatherFetch("error")
		respondWithRetryableError(w, http.StatusServiceUnavailable, "Weather is unavailable right now")
		return
	}

	middleware.ObserveWeatherFetch("success")
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"coordinate": coord,
		"current":    report.Current,
		"forecast":   report.Forecast,
	})
}
