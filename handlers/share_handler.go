package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"shoreSquadAPI/services"
)

type ShareHandler struct {
	shareService *services.ShareService
}

func NewShareHandler(shareService *services.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

// ShareRally returns the deep link for a rally plus a QR PNG of it,
// base64-encoded for direct embedding.
func (h *ShareHandler) ShareRally(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vars := mux.Vars(r)
	share, err := h.shareService.GenerateShareCode(ctx, vars["id"])
	if err != nil {
		if errors.Is(err, services.ErrRallyNotFound) {
			respondWithError(w, http.StatusNotFound, "Rally not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Could not generate share code")
		return
	}

	respondWithJSON(w, http.StatusOK, share)
}
