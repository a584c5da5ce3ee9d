package handlers

import (
	"net/http"

	"shoreSquadAPI/services"
)

type BootstrapHandler struct {
	bootstrapService *services.BootstrapService
}

func NewBootstrapHandler(bootstrapService *services.BootstrapService) *BootstrapHandler {
	return &BootstrapHandler{
		bootstrapService: bootstrapService,
	}
}

// GetBootstrap serves the pre-assembled offline snapshot. ?refresh=1 nudges
// the warmer, which ignores nudges inside its throttle window.
func (h *BootstrapHandler) GetBootstrap(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		h.bootstrapService.Refresh()
	}

	snapshot, ok := h.bootstrapService.Snapshot()
	if !ok {
		respondWithRetryableError(w, http.StatusServiceUnavailable, "Snapshot is still warming up")
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}
