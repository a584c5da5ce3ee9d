package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shoreSquadAPI/services"
	"shoreSquadAPI/utils"
)

type CrewHandler struct {
	crewService *services.CrewService
}

func NewCrewHandler(crewService *services.CrewService) *CrewHandler {
	return &CrewHandler{
		crewService: crewService,
	}
}

func (h *CrewHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req services.CrewSignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.crewService.Signup(ctx, &req)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			respondWithValidationError(w, verr)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Could not sign up")
		return
	}

	respondWithJSON(w, http.StatusCreated, member)
}
