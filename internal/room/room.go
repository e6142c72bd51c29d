package room

import (
	"sync"
	"time"

	"draw-duel/internal/shared"
)

const maxPlayers = 2

// Room is the per-game coordinator state. The mutex serializes every
// state-affecting operation on this room; operations on different rooms
// are fully independent.
type Room struct {
	mu sync.Mutex

	ID        string
	Phase     shared.Phase
	Players   []shared.Player
	CreatorID string
	CreatedAt time.Time

	// Round state, reset on every start.
	Round          int
	ReferenceImage string
	Subs           *SubmissionBuffer
	Result         *shared.RoundResult
	GraceUntil     time.Time

	// Rematch ready set, always a subset of Players.
	Ready map[string]bool

	Timer      *RoundTimer
	LastActive time.Time
}

func NewRoom(id string) *Room {
	now := time.Now()
	return &Room{
		ID:         id,
		Phase:      shared.PhaseWaiting,
		Subs:       NewSubmissionBuffer(),
		Ready:      make(map[string]bool),
		CreatedAt:  now,
		LastActive: now,
	}
}

func (r *Room) player(id string) *shared.Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// Info snapshots the room for the synchronous room-info query. The
// reference image is only exposed once a round has started.
func (r *Room) Info() shared.RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]shared.Player, len(r.Players))
	copy(players, r.Players)

	var ref *string
	if r.ReferenceImage != "" && (r.Phase == shared.PhaseActive || r.Phase == shared.PhaseFinished) {
		img := r.ReferenceImage
		ref = &img
	}

	var timeLeft float64
	if r.Phase == shared.PhaseActive {
		timeLeft = r.Timer.Remaining().Seconds()
	}
	return shared.RoomInfo{
		ID:              r.ID,
		Status:          r.Phase,
		Players:         players,
		ReferenceImage:  ref,
		TimeLeftSeconds: timeLeft,
		CreatedAt:       r.CreatedAt,
	}
}

func (r *Room) touch() {
	r.LastActive = time.Now()
}
