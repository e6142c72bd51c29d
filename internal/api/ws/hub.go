package ws

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"draw-duel/internal/room"
	"draw-duel/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Drawings can be streamed while the canvas updates, so submissions are
// rate limited per connection rather than rejected outright.
const (
	submitRatePerSec = 5
	submitBurst      = 10
)

type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// send serializes writes; the broadcast fan-out and the read loop's
// direct replies share the same connection. The deadline keeps a dead
// peer from stalling a room-wide broadcast.
func (cl *client) send(action string, data interface{}) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return cl.conn.WriteJSON(map[string]interface{}{
		"action": action,
		"data":   data,
	})
}

type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*client]struct{}
	roomManager RoomManager
}

func NewHub(roomManager RoomManager) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*client]struct{}),
		roomManager: roomManager,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomID := c.Query("game_id")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade connection: %v", err)
		return
	}

	cl := &client{conn: conn}

	h.mu.Lock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*client]struct{})
	}
	h.rooms[roomID][cl] = struct{}{}
	h.mu.Unlock()

	log.Printf("socket connected to room %s", roomID)

	defer func() {
		h.mu.Lock()
		delete(h.rooms[roomID], cl)
		if len(h.rooms[roomID]) == 0 {
			delete(h.rooms, roomID)
		}
		h.mu.Unlock()
		_ = conn.Close()
		log.Printf("socket left room %s", roomID)
	}()

	limiter := rate.NewLimiter(submitRatePerSec, submitBurst)

	for {
		var msg struct {
			Action string          `json:"action"`
			Data   json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("error reading socket message: %v", err)
			}
			break
		}

		switch msg.Action {
		case "join_game":
			h.handleJoin(roomID, cl, msg.Data)
		case "start_game":
			h.handleStart(roomID, cl, msg.Data)
		case "submit_drawing":
			h.handleSubmit(roomID, cl, limiter, msg.Data)
		case "play_again":
			h.handlePlayAgain(roomID, cl, msg.Data)
		default:
			log.Printf("unknown action %q in room %s", msg.Action, roomID)
		}
	}
}

// Broadcast fans an event out to every connection in the room. Delivery
// is best-effort per connection; a dead connection is dropped and the
// player resyncs via the room-info query on reconnect.
func (h *Hub) Broadcast(roomID string, action string, data interface{}) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomID]))
	for cl := range h.rooms[roomID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		if err := cl.send(action, data); err != nil {
			log.Printf("failed to send %s to room %s: %v", action, roomID, err)
			cl.conn.Close()
			h.mu.Lock()
			delete(h.rooms[roomID], cl)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) sendError(cl *client, err error) {
	if werr := cl.send(shared.EventError, gin.H{"message": err.Error()}); werr != nil {
		log.Printf("failed to send error event: %v", werr)
	}
}

func (h *Hub) handleJoin(roomID string, cl *client, data json.RawMessage) {
	var req struct {
		PlayerName string `json:"player_name"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(cl, errors.New("invalid join_game payload"))
		return
	}

	p, err := h.roomManager.Join(roomID, req.PlayerName)
	if err != nil {
		h.sendError(cl, err)
		return
	}

	// Ack to the joining connection only; the room-wide player_joined
	// event is broadcast by the manager.
	if err := cl.send("joined", gin.H{"player_id": p.ID}); err != nil {
		log.Printf("failed to ack join for %s: %v", p.ID, err)
	}
}

func (h *Hub) handleStart(roomID string, cl *client, data json.RawMessage) {
	var req struct {
		PlayerID string `json:"player_id"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(cl, errors.New("invalid start_game payload"))
		return
	}
	if err := h.roomManager.Start(roomID, req.PlayerID); err != nil {
		h.sendError(cl, err)
	}
}

func (h *Hub) handleSubmit(roomID string, cl *client, limiter *rate.Limiter, data json.RawMessage) {
	var req struct {
		PlayerID    string `json:"player_id"`
		DrawingData string `json:"drawing_data"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(cl, errors.New("invalid submit_drawing payload"))
		return
	}
	if !limiter.Allow() {
		log.Printf("submission from %s in room %s rate limited", req.PlayerID, roomID)
		return
	}

	err := h.roomManager.Submit(roomID, req.PlayerID, req.DrawingData)
	switch {
	case err == nil:
	case errors.Is(err, room.ErrRoundClosed):
		// A final buffer flush losing the race against the grace window
		// is expected; drop it quietly.
		log.Printf("late submission from %s in room %s dropped", req.PlayerID, roomID)
	default:
		h.sendError(cl, err)
	}
}

func (h *Hub) handlePlayAgain(roomID string, cl *client, data json.RawMessage) {
	var req struct {
		PlayerID string `json:"player_id"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		h.sendError(cl, errors.New("invalid play_again payload"))
		return
	}
	if err := h.roomManager.Rematch(roomID, req.PlayerID); err != nil {
		h.sendError(cl, err)
	}
}
