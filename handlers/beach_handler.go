package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shoreSquadAPI/internal/types/beach"
	"shoreSquadAPI/services"
)

type BeachHandler struct {
	beachService *services.BeachService
}

func NewBeachHandler(beachService *services.BeachService) *BeachHandler {
	return &BeachHandler{
		beachService: beachService,
	}
}

func (h *BeachHandler) GetBeaches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := r.URL.Query().Get("q")
	status := beach.Status(r.URL.Query().Get("status"))

	beaches, err := h.beachService.GetBeaches(ctx, query, status)
	if err != nil {
		if errors.Is(err, services.ErrUnknownBeachStatus) {
			respondWithError(w, http.StatusBadRequest, "Unknown status, want needs-cleanup, active-rally or clean")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Could not load beaches")
		return
	}

	respondWithJSON(w, http.StatusOK, beaches)
}
