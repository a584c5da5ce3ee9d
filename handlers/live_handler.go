package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"shoreSquadAPI/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type LiveHandler struct {
	feed         *services.LiveFeed
	rallyService *services.RallyService
}

func NewLiveHandler(feed *services.LiveFeed, rallyService *services.RallyService) *LiveHandler {
	return &LiveHandler{
		feed:         feed,
		rallyService: rallyService,
	}
}

// JoinFeed upgrades the connection and parks it on the live feed. The
// client immediately gets the current rally list, then a fresh snapshot
// after every mutation.
func (h *LiveHandler) JoinFeed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Could not upgrade connection: %v", err)
		return
	}

	client := services.NewFeedClient(h.feed, conn)

	// Hand the newcomer the current list before any broadcast arrives.
	initial, err := json.Marshal(map[string]interface{}{
		"action":  "rally_list",
		"rallies": h.rallyService.GetRallies(ctx),
	})
	if err == nil {
		client.Send <- initial
	}

	h.feed.Register <- client
	go client.WritePump()
	go client.ReadPump()
}
