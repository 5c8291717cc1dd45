// internal/httpserver/ws.go
//
// Live state push over WebSocket (GET /game/ws).
// A connected client receives the current state immediately and then the
// new state after every mutation of its session. Client messages are
// ignored; the read loop only tracks liveness.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/reddle/internal/store"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// hub fans state updates out to the clients of each session.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[*wsClient]struct{} // keyed by session ID
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[*wsClient]struct{})}
}

func (h *hub) subscribe(sid string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sid] == nil {
		h.subs[sid] = make(map[*wsClient]struct{})
	}
	h.subs[sid][c] = struct{}{}
}

func (h *hub) unsubscribe(sid string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[sid], c)
	if len(h.subs[sid]) == 0 {
		delete(h.subs, sid)
	}
	c.close()
}

// publish sends v to every client of sid. Clients whose buffer is full miss
// this update; the next one carries the full state anyway.
func (h *hub) publish(sid string, v stateView) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.subs[sid]) == 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Msg("encode state push")
		return
	}
	for c := range h.subs[sid] {
		select {
		case c.send <- b:
		default:
			log.Debug().Str("gameId", sid).Msg("dropped state push")
		}
	}
}

// closeAll disconnects every client (used on shutdown).
func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sid, clients := range h.subs {
		for c := range clients {
			c.close()
		}
		delete(h.subs, sid)
	}
}

// subscribers returns the number of clients of sid.
func (h *hub) subscribers(sid string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[sid])
}

func (c *wsClient) close() {
	c.once.Do(func() { close(c.send) })
}

// handleWS upgrades the connection and streams the session's state.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sid, err := s.sessionID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game")
		return
	}
	if _, err := s.currentState(r.Context(), sid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no_game")
			return
		}
		log.Error().Err(err).Str("gameId", sid).Msg("load game")
		writeError(w, http.StatusInternalServerError, "store_failed")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	c := &wsClient{conn: conn, send: make(chan []byte, 16)}
	if err := s.attach(r.Context(), sid, c); err != nil {
		log.Error().Err(err).Str("gameId", sid).Msg("attach websocket")
		_ = conn.Close()
		return
	}

	go c.writePump()
	c.readPump()
	s.hub.unsubscribe(sid, c)
}

// attach queues sid's current state on c and subscribes c to later updates.
// Both happen under the session lock, so no mutation can fall between them.
func (s *Server) attach(ctx context.Context, sid string, c *wsClient) error {
	unlock := s.locks.lock(sid)
	defer unlock()

	snap, err := s.currentState(ctx, sid)
	if err != nil {
		return err
	}
	first, err := json.Marshal(newStateView(snap))
	if err != nil {
		return err
	}
	c.send <- first
	s.hub.subscribe(sid, c)
	return nil
}

// readPump discards client messages until the connection fails or closes.
func (c *wsClient) readPump() {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards queued states and keeps the connection alive with pings.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
