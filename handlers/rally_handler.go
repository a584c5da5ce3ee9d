package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"shoreSquadAPI/internal/types/rally"
	"shoreSquadAPI/middleware"
	"shoreSquadAPI/services"
	"shoreSquadAPI/utils"
)

type RallyHandler struct {
	rallyService *services.RallyService
}

func NewRallyHandler(rallyService *services.RallyService) *RallyHandler {
	return &RallyHandler{
		rallyService: rallyService,
	}
}

func (h *RallyHandler) CreateRally(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req rally.CreateRallyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.rallyService.CreateRally(ctx, &req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			respondWithValidationError(w, verr)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Could not create rally")
		return
	}

	middleware.ObserveRallyCreated()
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *RallyHandler) GetRallies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	respondWithJSON(w, http.StatusOK, h.rallyService.GetRallies(ctx))
}

func (h *RallyHandler) GetRally(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vars := mux.Vars(r)
	found, err := h.rallyService.GetRally(ctx, vars["id"])
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Rally not found")
		return
	}

	respondWithJSON(w, http.StatusOK, found)
}

func (h *RallyHandler) JoinRally(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	vars := mux.Vars(r)
	joined, err := h.rallyService.JoinRally(ctx, vars["id"])
	if err != nil {
		if errors.Is(err, services.ErrRallyNotFound) {
			respondWithError(w, http.StatusNotFound, "Rally not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Could not join rally")
		return
	}

	middleware.ObserveRallyJoined()
	respondWithJSON(w, http.StatusOK, joined)
}

func (h *RallyHandler) JoinNext(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	joined, err := h.rallyService.JoinNext(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Could not join next rally")
		return
	}

	middleware.ObserveRallyJoined()
	respondWithJSON(w, http.StatusOK, joined)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithRetryableError marks failures the client may retry by hand.
// There is no automatic retry anywhere; the flag only drives the retry
// button.
func respondWithRetryableError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]interface{}{
		"error":     message,
		"retryable": true,
	})
}

// respondWithValidationError reports field-level failures next to a
// top-level message, so clients can both highlight inputs and announce the
// failure in one go.
func respondWithValidationError(w http.ResponseWriter, verr *utils.ValidationError) {
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   "Validation failed",
		"message": verr.Error(),
		"fields":  verr.Fields,
	})
}
