package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"shoreSquadAPI/internal/geolocate"
	"shoreSquadAPI/internal/types/mapwidget"
	"shoreSquadAPI/middleware"
	"shoreSquadAPI/services"
)

type MapHandler struct {
	mapService *services.MapService
	resolver   *geolocate.Resolver
}

func NewMapHandler(mapService *services.MapService, resolver *geolocate.Resolver) *MapHandler {
	return &MapHandler{
		mapService: mapService,
		resolver:   resolver,
	}
}

// GetMap serves either the interactive widget descriptor or the embed
// fallback. The two views are mutually exclusive; anything else is a 400.
func (h *MapHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	view := mapwidget.View(r.URL.Query().Get("view"))
	if view == "" {
		view = mapwidget.ViewInteractive
	}

	center := h.resolver.Resolve(ctx, middleware.ClientIP(r))

	switch view {
	case mapwidget.ViewInteractive:
		descriptor, err := h.mapService.BuildInteractive(ctx, center)
		if err != nil {
			log.Printf("Map descriptor build failed: %v", err)
			respondWithRetryableError(w, http.StatusServiceUnavailable, "Map is unavailable right now")
			return
		}
		respondWithJSON(w, http.StatusOK, descriptor)

	case mapwidget.ViewEmbed:
		respondWithJSON(w, http.StatusOK, h.mapService.BuildEmbed(center))

	default:
		respondWithError(w, http.StatusBadRequest, "Unknown view, want interactive or embed")
	}
}
