package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"shoreSquadAPI/services"
)

// maxPreferencesSize bounds the opaque blob so a single PUT can't eat the
// data dir.
const maxPreferencesSize = 64 * 1024

type PreferenceHandler struct {
	preferenceService *services.PreferenceService
}

func NewPreferenceHandler(preferenceService *services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
	}
}

// GetPreferences returns the stored blob verbatim, an empty object when
// nothing was ever saved.
func (h *PreferenceHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	blob := h.preferenceService.Get(ctx)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

// UpdatePreferences overwrites the whole blob, like a localStorage set.
func (h *PreferenceHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPreferencesSize))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not read request body")
		return
	}

	if err := h.preferenceService.Update(ctx, raw); err != nil {
		if errors.Is(err, services.ErrInvalidPreferences) {
			respondWithError(w, http.StatusBadRequest, "Preferences must be valid JSON")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Could not save preferences")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}
