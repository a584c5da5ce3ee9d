package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoreSquadAPI/internal/types/rally"
	"shoreSquadAPI/services"
)

type feedMessage struct {
	Action  string         `json:"action"`
	Rallies []*rally.Rally `json:"rallies"`
}

func readFeedMessage(t *testing.T, conn *websocket.Conn) feedMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg feedMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestLiveHandler_FeedEndToEnd(t *testing.T) {
	rallyService := services.NewRallyService(clockwork.NewRealClock())
	_, err := rallyService.CreateRally(context.Background(), &rally.CreateRallyRequest{
		Name:     "Dawn Patrol",
		Location: "Changi Beach",
		Date:     "2025-01-10T09:00",
		Creator:  "Sam",
	})
	require.NoError(t, err)

	// A short real-clock debounce keeps the test quick without changing
	// the coalescing behavior.
	feed := services.NewLiveFeed(clockwork.NewRealClock(), 10*time.Millisecond)
	rallyService.SetListener(feed)
	go feed.Run()

	h := NewLiveHandler(feed, rallyService)
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/live", h.JoinFeed)

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/live"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	defer resp.Body.Close()

	// The newcomer gets the current list before any broadcast.
	initial := readFeedMessage(t, conn)
	assert.Equal(t, "rally_list", initial.Action)
	require.Len(t, initial.Rallies, 1)
	assert.Equal(t, "Dawn Patrol", initial.Rallies[0].Name)

	require.Eventually(t, func() bool { return feed.ClientCount() == 1 }, time.Second, time.Millisecond)

	// A mutation reaches the socket as a fresh snapshot, newest first.
	_, err = rallyService.CreateRally(context.Background(), &rally.CreateRallyRequest{
		Name:     "Sunset Sweep",
		Location: "Siloso Beach",
		Date:     "2025-01-12T17:30",
		Creator:  "Maya",
	})
	require.NoError(t, err)

	update := readFeedMessage(t, conn)
	assert.Equal(t, "rally_list", update.Action)
	require.Len(t, update.Rallies, 2)
	assert.Equal(t, "Sunset Sweep", update.Rallies[0].Name)

	// Joining also fans out.
	_, err = rallyService.JoinRally(context.Background(), update.Rallies[0].ID)
	require.NoError(t, err)

	joined := readFeedMessage(t, conn)
	require.Len(t, joined.Rallies, 2)
	assert.Equal(t, 2, joined.Rallies[0].Participants)

	conn.Close()
	require.Eventually(t, func() bool { return feed.ClientCount() == 0 }, time.Second, time.Millisecond,
		"closing the socket must unregister the client")
}
