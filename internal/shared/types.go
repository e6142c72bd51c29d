package shared

import "time"

// Phase is the lifecycle stage of a game room. Every state-affecting
// operation is guarded by the room's current phase.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"  // 0 or 1 player joined
	PhaseReady    Phase = "ready"    // 2 players, round not started
	PhaseActive   Phase = "active"   // round timer running
	PhaseFinished Phase = "finished" // time up, result pending or delivered
)

// Event names pushed to clients over the room socket.
const (
	EventPlayerJoined = "player_joined"
	EventGameStart    = "game_start"
	EventTimeUp       = "time_up"
	EventGameResults  = "game_results"
	EventPlayerReady  = "player_ready"
	EventRoomReady    = "room_ready"
	EventRoomClosed   = "room_closed"
	EventError        = "error"
)

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoundResult is computed once per round and never mutated afterwards.
// Players who submitted nothing are absent from Scores and Drawings,
// not zero-scored. WinnerID is empty on a tie.
type RoundResult struct {
	Scores         map[string]float64 `json:"scores"`
	WinnerID       string             `json:"winner,omitempty"`
	ReferenceImage string             `json:"reference_image"`
	Drawings       map[string]string  `json:"drawings"`
}

// RoomInfo is the synchronous snapshot returned by the room-info query.
// Reconnecting clients use it to resync instead of replaying missed events;
// TimeLeftSeconds lets them re-seed their local countdown mid-round.
type RoomInfo struct {
	ID              string    `json:"id"`
	Status          Phase     `json:"status"`
	Players         []Player  `json:"players"`
	ReferenceImage  *string   `json:"reference_image"`
	TimeLeftSeconds float64   `json:"time_left_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}
