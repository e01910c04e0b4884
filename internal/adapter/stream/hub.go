package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"tilequest/internal/app/game"
	"tilequest/internal/app/ports"
	"tilequest/internal/domain/event"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	MessageState = "state"
	MessageEvent = "event"
)

// Message is the JSON frame pushed to stream clients.
type Message struct {
	Type   string       `json:"type"`
	GameID string       `json:"game_id"`
	Event  *event.Event `json:"event,omitempty"`
	State  *game.View   `json:"state,omitempty"`
}

// StateSource hands out a game's view while no command can run on it, so a
// client registered inside fn misses no event emitted after the view.
type StateSource interface {
	WithState(ctx context.Context, gameID string, fn func(game.View)) error
}

// Hub fans game events out to websocket clients subscribed to that game.
// Clients whose send buffer is full are dropped.
type Hub struct {
	States   StateSource
	Upgrader websocket.Upgrader
	Log      logrus.FieldLogger

	mu      sync.Mutex
	clients map[string]map[*client]struct{}
}

// NewHub builds a hub accepting browser connections from origin; an empty
// origin or "*" accepts any.
func NewHub(states StateSource, origin string, log logrus.FieldLogger) *Hub {
	return &Hub{
		States: states,
		Upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(origin),
		},
		Log:     log,
		clients: map[string]map[*client]struct{}{},
	}
}

func (h *Hub) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /games/{game_id}/stream", h.serveStream)
	return mux
}

func (h *Hub) Observe(gameID string, e event.Event) {
	b, err := json.Marshal(Message{Type: MessageEvent, GameID: gameID, Event: &e})
	if err != nil {
		h.logger().WithError(err).WithField("game_id", gameID).Error("encode stream event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[gameID] {
		select {
		case c.send <- b:
		default:
			h.dropLocked(c)
			h.logger().WithField("game_id", gameID).Warn("stream client too slow, dropped")
		}
	}
}

// Count reports the connected clients of a game.
func (h *Hub) Count(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[gameID])
}

func (h *Hub) serveStream(w http.ResponseWriter, r *http.Request) {
	gameID := strings.TrimSpace(r.PathValue("game_id"))
	if gameID == "" {
		http.Error(w, "game id is required", http.StatusBadRequest)
		return
	}

	c := newClient(gameID, h.logger().WithField("game_id", gameID))
	if h.States == nil {
		h.register(c)
	} else {
		var encodeErr error
		err := h.States.WithState(r.Context(), gameID, func(view game.View) {
			b, err := json.Marshal(Message{Type: MessageState, GameID: gameID, State: &view})
			if err != nil {
				encodeErr = err
				return
			}
			c.send <- b
			h.register(c)
		})
		if err == nil {
			err = encodeErr
		}
		switch {
		case errors.Is(err, ports.ErrNotFound):
			http.Error(w, "game not found", http.StatusNotFound)
			return
		case err != nil:
			h.logger().WithError(err).WithField("game_id", gameID).Error("load stream state")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}

	ws, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.unregister(c)
		h.logger().WithError(err).WithField("game_id", gameID).Warn("stream upgrade failed")
		return
	}
	c.ws = ws
	go c.writePump()
	go c.readPump(h)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients == nil {
		h.clients = map[string]map[*client]struct{}{}
	}
	set, ok := h.clients[c.gameID]
	if !ok {
		set = map[*client]struct{}{}
		h.clients[c.gameID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *client) {
	set, ok := h.clients[c.gameID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.gameID)
	}
}

func originChecker(origin string) func(*http.Request) bool {
	origin = strings.TrimSpace(origin)
	if origin == "" || origin == "*" {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		got := r.Header.Get("Origin")
		// non-browser clients send no Origin
		return got == "" || strings.EqualFold(got, origin)
	}
}

func (h *Hub) logger() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}
