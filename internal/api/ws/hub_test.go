package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"draw-duel/internal/config"
	"draw-duel/internal/room"
	"draw-duel/internal/scoring"
	"draw-duel/internal/shared"
	"draw-duel/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*httptest.Server, *room.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{ReferenceImages: []string{"/ref/a.png"}}
	cfg.Round.Update(100*time.Millisecond, 50*time.Millisecond, time.Second)

	sc := room.NewScoringCoordinator(scoring.LocalScorer{}, cfg.Round.ScoreTimeout)
	rm := room.NewManager(store.NewMemoryStore(), cfg, sc)
	hub := NewHub(rm)
	rm.SetHub(hub)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, rm
}

func dial(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?game_id=" + gameID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendAction(t *testing.T, conn *websocket.Conn, action string, data interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"action": action,
		"data":   data,
	}))
}

// readUntil skips unrelated broadcasts until the wanted action arrives.
func readUntil(t *testing.T, conn *websocket.Conn, action string) json.RawMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg wsMessage
		require.NoError(t, conn.ReadJSON(&msg), "waiting for %s", action)
		if msg.Action == action {
			return msg.Data
		}
	}
}

func TestFullRoundOverSocket(t *testing.T) {
	srv, rm := newTestServer(t)
	r := rm.CreateRoom()

	conn1 := dial(t, srv, r.ID)
	conn2 := dial(t, srv, r.ID)

	sendAction(t, conn1, "join_game", map[string]string{"player_name": "Alice"})
	var ack1 struct {
		PlayerID string `json:"player_id"`
	}
	require.NoError(t, json.Unmarshal(readUntil(t, conn1, "joined"), &ack1))
	require.NotEmpty(t, ack1.PlayerID)

	sendAction(t, conn2, "join_game", map[string]string{"player_name": "Bob"})
	var ack2 struct {
		PlayerID string `json:"player_id"`
	}
	require.NoError(t, json.Unmarshal(readUntil(t, conn2, "joined"), &ack2))

	// Both connections see the second join.
	var joined struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(readUntil(t, conn1, shared.EventPlayerJoined), &joined))

	sendAction(t, conn1, "start_game", map[string]string{"player_id": ack1.PlayerID})

	var started struct {
		ReferenceImage string `json:"reference_image"`
	}
	require.NoError(t, json.Unmarshal(readUntil(t, conn2, shared.EventGameStart), &started))
	assert.Equal(t, "/ref/a.png", started.ReferenceImage)

	sendAction(t, conn2, "submit_drawing", map[string]string{
		"player_id":    ack2.PlayerID,
		"drawing_data": "data:image/png;base64,Qm9i",
	})

	readUntil(t, conn1, shared.EventTimeUp)

	var results shared.RoundResult
	require.NoError(t, json.Unmarshal(readUntil(t, conn1, shared.EventGameResults), &results))
	assert.Equal(t, ack2.PlayerID, results.WinnerID)
	assert.Contains(t, results.Scores, ack2.PlayerID)
	assert.NotContains(t, results.Scores, ack1.PlayerID)
}

func TestSocketErrorsStayPerConnection(t *testing.T) {
	srv, rm := newTestServer(t)
	r := rm.CreateRoom()

	conn1 := dial(t, srv, r.ID)
	conn2 := dial(t, srv, r.ID)

	sendAction(t, conn1, "join_game", map[string]string{"player_name": "Alice"})
	readUntil(t, conn1, "joined")

	// Non-creator start attempt: the error goes to conn2 only, and the
	// room state is untouched.
	sendAction(t, conn2, "join_game", map[string]string{"player_name": "Bob"})
	var ack2 struct {
		PlayerID string `json:"player_id"`
	}
	require.NoError(t, json.Unmarshal(readUntil(t, conn2, "joined"), &ack2))

	sendAction(t, conn2, "start_game", map[string]string{"player_id": ack2.PlayerID})

	var errData struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(readUntil(t, conn2, shared.EventError), &errData))
	assert.NotEmpty(t, errData.Message)

	info, err := rm.Info(r.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.PhaseReady, info.Status)
}

func TestUpgradeRequiresGameID(t *testing.T) {
	srv, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	assert.Error(t, err)
	if resp != nil {
		assert.Equal(t, 400, resp.StatusCode)
	}
}
