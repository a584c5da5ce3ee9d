package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoreSquadAPI/internal/types/rally"
	"shoreSquadAPI/services"
)

// newRallyRouter mirrors the rally routes exactly as main.go mounts them,
// literal segments before parameterized ones.
func newRallyRouter(clock clockwork.Clock) (*mux.Router, *services.RallyService) {
	rallyService := services.NewRallyService(clock)
	h := NewRallyHandler(rallyService)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/rallies", h.GetRallies).Methods("GET")
	api.HandleFunc("/rallies", h.CreateRally).Methods("POST")
	api.HandleFunc("/rallies/next/join", h.JoinNext).Methods("POST")
	api.HandleFunc("/rallies/{id}", h.GetRally).Methods("GET")
	api.HandleFunc("/rallies/{id}/join", h.JoinRally).Methods("POST")
	return r, rallyService
}

func doRequest(router *mux.Router, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createRallyBody(name string) *bytes.Buffer {
	body, _ := json.Marshal(map[string]string{
		"name":     name,
		"location": "Changi Beach",
		"date":     "2025-01-10T09:00",
		"creator":  "Sam",
	})
	return bytes.NewBuffer(body)
}

func TestRallyHandler_CreateReturns201(t *testing.T) {
	router, _ := newRallyRouter(clockwork.NewFakeClock())

	rec := doRequest(router, http.MethodPost, "/api/v1/rallies", createRallyBody("Dawn Patrol"))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var created rally.Rally
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Dawn Patrol", created.Name)
	assert.Equal(t, "2025-01-10T09:00", created.StartsAt)
	assert.Equal(t, 1, created.Participants)
	assert.Equal(t, rally.StatusActive, created.Status)
}

func TestRallyHandler_CreateValidationFailure(t *testing.T) {
	router, _ := newRallyRouter(clockwork.NewFakeClock())

	rec := doRequest(router, http.MethodPost, "/api/v1/rallies",
		bytes.NewBufferString(`{"description":"fields all missing"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   string            `json:"error"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Error)
	assert.NotEmpty(t, resp.Message)
	assert.Contains(t, resp.Fields, "name")
	assert.Contains(t, resp.Fields, "location")
	assert.Contains(t, resp.Fields, "date")

	// The failed create must not leave anything behind.
	list := doRequest(router, http.MethodGet, "/api/v1/rallies", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestRallyHandler_CreateMalformedBody(t *testing.T) {
	router, _ := newRallyRouter(clockwork.NewFakeClock())

	rec := doRequest(router, http.MethodPost, "/api/v1/rallies", bytes.NewBufferString("{not json"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
}

func TestRallyHandler_ListNewestFirst(t *testing.T) {
	clock := clockwork.NewFakeClock()
	router, _ := newRallyRouter(clock)

	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/rallies", createRallyBody("First")).Code)
	clock.Advance(time.Minute)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/rallies", createRallyBody("Second")).Code)

	rec := doRequest(router, http.MethodGet, "/api/v1/rallies", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []rally.Rally
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Name)
	assert.Equal(t, "First", list[1].Name)
}

func TestRallyHandler_GetUnknownRally(t *testing.T) {
	router, _ := newRallyRouter(clockwork.NewFakeClock())

	rec := doRequest(router, http.MethodGet, "/api/v1/rallies/1736500000000", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Rally not found"}`, rec.Body.String())
}

func TestRallyHandler_JoinBumpsParticipants(t *testing.T) {
	router, _ := newRallyRouter(clockwork.NewFakeClock())

	create := doRequest(router, http.MethodPost, "/api/v1/rallies", createRallyBody("Dawn Patrol"))
	var created rally.Rally
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))

	rec := doRequest(router, http.MethodPost, "/api/v1/rallies/"+created.ID+"/join", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var joined rally.Rally
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &joined))
	assert.Equal(t, created.ID, joined.ID)
	assert.Equal(t, 2, joined.Participants)
}

func TestRallyHandler_JoinUnknownRally(t *testing.T) {
	router, _ := newRallyRouter(clockwork.NewFakeClock())

	create := doRequest(router, http.MethodPost, "/api/v1/rallies", createRallyBody("Dawn Patrol"))
	var created rally.Rally
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &created))

	rec := doRequest(router, http.MethodPost, "/api/v1/rallies/0/join", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Rally not found"}`, rec.Body.String())

	// Nothing else got joined by accident.
	check := doRequest(router, http.MethodGet, "/api/v1/rallies/"+created.ID, nil)
	var unchanged rally.Rally
	require.NoError(t, json.Unmarshal(check.Body.Bytes(), &unchanged))
	assert.Equal(t, 1, unchanged.Participants)
}

func TestRallyHandler_JoinNextOnEmptyList(t *testing.T) {
	router, _ := newRallyRouter(clockwork.NewFakeClock())

	rec := doRequest(router, http.MethodPost, "/api/v1/rallies/next/join", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var joined rally.Rally
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &joined))
	assert.Equal(t, "Next Beach Cleanup", joined.Name)
	assert.Equal(t, 2, joined.Participants, "creator plus the joiner")
}

func TestRallyHandler_JoinNextPrefersSoonestStart(t *testing.T) {
	clock := clockwork.NewFakeClock()
	router, _ := newRallyRouter(clock)

	later, _ := json.Marshal(map[string]string{
		"name": "Later", "location": "Punggol Beach", "date": "2025-03-01T10:00", "creator": "Sam",
	})
	sooner, _ := json.Marshal(map[string]string{
		"name": "Sooner", "location": "Siloso Beach", "date": "2025-01-05T08:00", "creator": "Sam",
	})
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/rallies", bytes.NewBuffer(later)).Code)
	clock.Advance(time.Minute)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/v1/rallies", bytes.NewBuffer(sooner)).Code)

	rec := doRequest(router, http.MethodPost, "/api/v1/rallies/next/join", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var joined rally.Rally
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &joined))
	assert.Equal(t, "Sooner", joined.Name)
}
