package handlers

import (
	"context"
	"net/http"
	"time"

	"shoreSquadAPI/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats serves the impact counters. During warmup the values are still
// climbing; warm tells the client whether what it sees is final.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"stats":        h.statsService.GetStats(ctx),
		"impact_score": h.statsService.ImpactScore(ctx),
		"warm":         h.statsService.Warm(),
	})
}
