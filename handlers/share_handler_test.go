package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoreSquadAPI/internal/types/rally"
	"shoreSquadAPI/services"
)

func newShareRouter(t *testing.T) (*mux.Router, *rally.Rally) {
	t.Helper()

	rallyService := services.NewRallyService(clockwork.NewFakeClock())
	created, err := rallyService.CreateRally(context.Background(), &rally.CreateRallyRequest{
		Name:     "Dawn Patrol",
		Location: "Changi Beach",
		Date:     "2025-01-10T09:00",
		Creator:  "Sam",
	})
	require.NoError(t, err)

	h := NewShareHandler(services.NewShareService(rallyService))
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/rallies/{id}/share", h.ShareRally).Methods("GET")
	return r, created
}

func TestShareHandler_ShareRally(t *testing.T) {
	router, created := newShareRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/rallies/"+created.ID+"/share", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp services.ShareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, created.ID, resp.RallyID)
	assert.Equal(t, "Dawn Patrol", resp.RallyName)
	assert.Equal(t, "shoresquad://rally/join/"+created.ID, resp.DeepLink)
	assert.NotEmpty(t, resp.QrCodeBase64)
}

func TestShareHandler_UnknownRally(t *testing.T) {
	router, _ := newShareRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/rallies/0/share", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Rally not found"}`, rec.Body.String())
}
