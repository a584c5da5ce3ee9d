package handlers

import (
	"context"
	"net/http"
	"time"

	"shoreSquadAPI/internal/geolocate"
	"shoreSquadAPI/middleware"
)

type GeoHandler struct {
	resolver *geolocate.Resolver
}

func NewGeoHandler(resolver *geolocate.Resolver) *GeoHandler {
	return &GeoHandler{
		resolver: resolver,
	}
}

// Locate reports where the API thinks the caller is. Lookup trouble never
// surfaces here; the worst case is the launch-city default.
func (h *GeoHandler) Locate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	coord := h.resolver.Resolve(ctx, middleware.ClientIP(r))

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"coordinate": coord,
	})
}
