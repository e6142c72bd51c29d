package room

import (
	"log"
	"math/rand"
	"time"

	"draw-duel/internal/config"
	"draw-duel/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Store interface {
	GetRoom(id string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(id string)
	Rooms() []*Room
}

// ResultSink receives finished rounds for archival. Implementations must
// not block the caller for long; archival failure never fails a room.
type ResultSink interface {
	RecordRound(roomID string, round int, players []shared.Player, res *shared.RoundResult)
}

// Manager owns every room and serializes all state-affecting operations
// per room via the room's lock. Arrival order at the lock decides the
// ordering of two players' simultaneous actions.
type Manager struct {
	store   Store
	cfg     *config.Config
	hub     Broadcaster
	scoring *ScoringCoordinator
	sink    ResultSink
}

func NewManager(s Store, cfg *config.Config, sc *ScoringCoordinator) *Manager {
	return &Manager{
		store:   s,
		cfg:     cfg,
		scoring: sc,
	}
}

func (m *Manager) SetHub(hub Broadcaster) {
	m.hub = hub
}

func (m *Manager) SetResultSink(sink ResultSink) {
	m.sink = sink
}

func (m *Manager) broadcast(roomID, action string, data interface{}) {
	if m.hub == nil {
		return
	}
	m.hub.Broadcast(roomID, action, data)
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// CreateRoom allocates a room with a fresh short code. The creator is
// whoever joins first, not the caller of this endpoint.
func (m *Manager) CreateRoom() *Room {
	var id string
	for {
		id = randCode(6)
		if _, taken := m.store.GetRoom(id); !taken {
			break
		}
	}
	r := NewRoom(id)
	m.store.SaveRoom(r)
	log.Printf("room %s created", id)
	return r
}

func (m *Manager) Info(roomID string) (shared.RoomInfo, error) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return shared.RoomInfo{}, ErrRoomNotFound
	}
	return r.Info(), nil
}

// Join admits a player while the room is waiting. The second join flips
// the room to ready; a third join fails with ErrRoomFull and leaves the
// room untouched.
func (m *Manager) Join(roomID, name string) (shared.Player, error) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return shared.Player{}, ErrRoomNotFound
	}

	r.mu.Lock()
	if len(r.Players) >= maxPlayers {
		r.mu.Unlock()
		return shared.Player{}, ErrRoomFull
	}
	if r.Phase != shared.PhaseWaiting {
		r.mu.Unlock()
		return shared.Player{}, ErrInvalidTransition
	}
	if name == "" {
		name = "Player"
	}

	p := shared.Player{ID: uuid.NewString(), Name: name}
	r.Players = append(r.Players, p)
	if len(r.Players) == 1 {
		r.CreatorID = p.ID
	}
	if len(r.Players) == maxPlayers {
		r.Phase = shared.PhaseReady
	}
	r.touch()
	r.mu.Unlock()

	m.broadcast(roomID, shared.EventPlayerJoined, gin.H{"id": p.ID, "name": p.Name})
	return p, nil
}

// Start begins a round. Creator-only, and only from ready. Previous
// round state is cleared before the timer arms, so submissions and
// results never leak across rounds.
func (m *Manager) Start(roomID, playerID string) error {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	if r.player(playerID) == nil {
		r.mu.Unlock()
		return ErrInvalidPlayer
	}
	if playerID != r.CreatorID {
		r.mu.Unlock()
		return ErrUnauthorized
	}
	if r.Phase != shared.PhaseReady {
		r.mu.Unlock()
		return ErrInvalidTransition
	}

	r.Round++
	r.Phase = shared.PhaseActive
	r.Subs.Reset()
	r.Result = nil
	r.Ready = make(map[string]bool)
	r.ReferenceImage = m.pickReference(r.ReferenceImage)
	r.GraceUntil = time.Time{}
	r.touch()

	round := r.Round
	reference := r.ReferenceImage
	r.Timer = NewRoundTimer(m.cfg.Round.Duration(), func() {
		m.timeUp(roomID, round)
	})
	r.mu.Unlock()

	log.Printf("room %s round %d started, reference %s", roomID, round, reference)
	m.broadcast(roomID, shared.EventGameStart, gin.H{"reference_image": reference})
	return nil
}

// pickReference selects the next reference image, avoiding an immediate
// repeat when more than one image is configured.
func (m *Manager) pickReference(previous string) string {
	imgs := m.cfg.ReferenceImages
	if len(imgs) == 0 {
		return ""
	}
	img := imgs[rand.Intn(len(imgs))]
	for len(imgs) > 1 && img == previous {
		img = imgs[rand.Intn(len(imgs))]
	}
	return img
}

// Submit buffers a drawing for the current round. Valid while the round
// is active or within the grace window right after time-up; a later
// arrival is dropped with ErrRoundClosed and never disturbs a published
// result.
func (m *Manager) Submit(roomID, playerID, drawing string) error {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.player(playerID) == nil {
		return ErrInvalidPlayer
	}

	inGrace := r.Phase == shared.PhaseFinished && r.Result == nil && time.Now().Before(r.GraceUntil)
	if r.Phase != shared.PhaseActive && !inGrace {
		return ErrRoundClosed
	}

	r.Subs.Set(playerID, drawing)
	r.touch()
	return nil
}

// timeUp is raised by the round timer. The round number guards against a
// stale timer from an already-superseded round; the phase guard makes a
// duplicate signal a no-op.
func (m *Manager) timeUp(roomID string, round int) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}

	r.mu.Lock()
	if r.Phase != shared.PhaseActive || r.Round != round {
		r.mu.Unlock()
		return
	}
	grace := m.cfg.Round.Grace()
	r.Phase = shared.PhaseFinished
	r.GraceUntil = time.Now().Add(grace)
	r.touch()
	r.mu.Unlock()

	m.broadcast(roomID, shared.EventTimeUp, gin.H{})

	// Hold scoring until the grace window closes so a final buffered
	// submission racing the timer can still land.
	time.AfterFunc(grace, func() {
		m.finishRound(roomID, round)
	})
}

// finishRound snapshots the submissions, scores them outside the room
// lock, and publishes the immutable result.
func (m *Manager) finishRound(roomID string, round int) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}

	r.mu.Lock()
	if r.Phase != shared.PhaseFinished || r.Round != round || r.Result != nil {
		r.mu.Unlock()
		return
	}
	reference := r.ReferenceImage
	drawings := r.Subs.Snapshot()
	r.mu.Unlock()

	result := m.scoring.ScoreRound(reference, drawings)

	r.mu.Lock()
	if r.Phase != shared.PhaseFinished || r.Round != round || r.Result != nil {
		r.mu.Unlock()
		return
	}
	r.Result = result
	players := make([]shared.Player, len(r.Players))
	copy(players, r.Players)
	r.touch()
	r.mu.Unlock()

	log.Printf("room %s round %d scored: %d submissions, winner %q", roomID, round, len(result.Scores), result.WinnerID)
	m.broadcast(roomID, shared.EventGameResults, result)

	if m.sink != nil {
		go m.sink.RecordRound(roomID, round, players, result)
	}
}

// Rematch records a player's request to play again. Re-requesting is
// idempotent. Once every player is ready the room returns to ready; the
// creator still has to start the next round explicitly.
func (m *Manager) Rematch(roomID, playerID string) error {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	p := r.player(playerID)
	if p == nil {
		r.mu.Unlock()
		return ErrInvalidPlayer
	}
	if r.Phase != shared.PhaseFinished {
		r.mu.Unlock()
		return ErrInvalidTransition
	}

	alreadyReady := r.Ready[playerID]
	r.Ready[playerID] = true
	r.touch()

	playerName := p.Name
	allReady := len(r.Ready) == len(r.Players) && len(r.Players) == maxPlayers
	if allReady {
		r.Ready = make(map[string]bool)
		r.Phase = shared.PhaseReady
	}
	r.mu.Unlock()

	if !alreadyReady {
		m.broadcast(roomID, shared.EventPlayerReady, gin.H{
			"player_id":   playerID,
			"player_name": playerName,
		})
	}
	if allReady {
		m.broadcast(roomID, shared.EventRoomReady, gin.H{})
	}
	return nil
}

// Close tears a room down: the timer is discarded and the room removed
// from the store. Connected clients get a terminal event so they can
// return to an idle state.
func (m *Manager) Close(roomID string) {
	r, ok := m.store.GetRoom(roomID)
	if !ok {
		return
	}

	r.mu.Lock()
	r.Timer.Cancel()
	r.mu.Unlock()

	m.store.DeleteRoom(roomID)
	m.broadcast(roomID, shared.EventRoomClosed, gin.H{})
	log.Printf("room %s closed", roomID)
}

// RunSweeper reaps rooms idle past the configured TTL. It returns when
// stop is closed.
func (m *Manager) RunSweeper(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-stop:
			return
		}
	}
}

func (m *Manager) sweep() {
	ttl := m.cfg.Round.RoomTTL()
	if ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-ttl)
	for _, r := range m.store.Rooms() {
		r.mu.Lock()
		idle := r.LastActive.Before(cutoff)
		r.mu.Unlock()
		if idle {
			log.Printf("room %s idle past %s, reaping", r.ID, ttl)
			m.Close(r.ID)
		}
	}
}
