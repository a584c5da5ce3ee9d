package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shoreSquadAPI/internal/types/leaderboard"
	"shoreSquadAPI/services"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category := leaderboard.Category(r.URL.Query().Get("category"))
	if category == "" {
		category = leaderboard.CategoryIndividual
	}

	board, err := h.leaderboardService.GetLeaderboard(ctx, category)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCategory) {
			respondWithError(w, http.StatusBadRequest, "Unknown category, want individual, teams or monthly")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Could not load leaderboard")
		return
	}

	respondWithJSON(w, http.StatusOK, board)
}
