// LiveFeed is the one-way fan-out for rally list updates. The REST handlers
// never touch it directly: the rally service calls RallyListChanged after a
// mutation, the feed coalesces bursts through a debounce window, then every
// connected socket gets the same snapshot. Register/Unregister/Broadcast are
// channels drained by a single Run() loop so the client map needs no lock.
package services

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"shoreSquadAPI/internal/types/rally"
	"shoreSquadAPI/utils"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// DefaultLiveDebounce is the coalescing window for list updates.
	DefaultLiveDebounce = 150 * time.Millisecond
)

type LiveFeed struct {
	Clients    map[*FeedClient]bool
	Broadcast  chan []byte
	Register   chan *FeedClient
	Unregister chan *FeedClient

	// OnCountChange, when set before Run starts, observes every client
	// count change. main.go points it at the metrics gauge.
	OnCountChange func(n int64)

	mu      sync.Mutex
	pending []byte
	flush   func()

	clientCount atomic.Int64
}

func NewLiveFeed(clock clockwork.Clock, debounce time.Duration) *LiveFeed {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if debounce <= 0 {
		debounce = DefaultLiveDebounce
	}

	f := &LiveFeed{
		Clients:    make(map[*FeedClient]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *FeedClient),
		Unregister: make(chan *FeedClient),
	}
	f.flush = utils.Debounce(clock, debounce, f.flushPending)
	return f
}

// RallyListChanged implements RallyListener. Bursts inside the debounce
// window collapse into one broadcast carrying the latest snapshot.
func (f *LiveFeed) RallyListChanged(rallies []*rally.Rally) {
	payload := map[string]interface{}{
		"action":  "rally_list",
		"rallies": rallies,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling rally list: %v", err)
		return
	}

	f.mu.Lock()
	f.pending = data
	f.mu.Unlock()
	f.flush()
}

func (f *LiveFeed) flushPending() {
	f.mu.Lock()
	data := f.pending
	f.pending = nil
	f.mu.Unlock()

	if data == nil {
		return
	}
	f.Broadcast <- data
}

// ClientCount reports how many sockets are connected right now.
func (f *LiveFeed) ClientCount() int64 {
	return f.clientCount.Load()
}

func (f *LiveFeed) Run() {
	for {
		select {
		case client := <-f.Register:
			f.Clients[client] = true
			f.setCount(len(f.Clients))
			log.Printf("[Live feed] Client %s connected. Count: %d", client.ID, len(f.Clients))

		case client := <-f.Unregister:
			if _, ok := f.Clients[client]; ok {
				delete(f.Clients, client)
				close(client.Send)
				f.setCount(len(f.Clients))
				log.Printf("[Live feed] Client %s left. Count: %d", client.ID, len(f.Clients))
			}

		case message := <-f.Broadcast:
			for client := range f.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(f.Clients, client)
					f.setCount(len(f.Clients))
				}
			}
		}
	}
}

func (f *LiveFeed) setCount(n int) {
	f.clientCount.Store(int64(n))
	if f.OnCountChange != nil {
		f.OnCountChange(int64(n))
	}
}

// FeedClient sits between one websocket and the feed.
type FeedClient struct {
	ID   string
	Feed *LiveFeed
	Conn *websocket.Conn
	Send chan []byte
}

func NewFeedClient(feed *LiveFeed, conn *websocket.Conn) *FeedClient {
	return &FeedClient{
		ID:   uuid.NewString(),
		Feed: feed,
		Conn: conn,
		Send: make(chan []byte, 16),
	}
}

// ReadPump drains the socket until the peer goes away. The feed is one-way:
// inbound frames only serve to detect disconnects.
func (c *FeedClient) ReadPump() {
	defer func() {
		c.Feed.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// WritePump handles messages going to the client.
func (c *FeedClient) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The feed closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
