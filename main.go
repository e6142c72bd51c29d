package main

import (
	"encoding/json"
	"fmt"
	"time"

	"draw-duel/internal/config"
	"draw-duel/internal/room"
	"draw-duel/internal/scoring"
	"draw-duel/internal/store"
)

// Local demo: runs one scripted round through the real manager, printing
// every event a connected client would receive. Handy for eyeballing the
// phase flow without a browser.

type consoleBroadcaster struct{}

func (consoleBroadcaster) Broadcast(roomID string, action string, data interface{}) {
	js, _ := json.Marshal(data)
	fmt.Printf("[%s] %s %s\n", roomID, action, js)
}

func main() {
	cfg := config.Load()
	cfg.Round.Update(2*time.Second, 200*time.Millisecond, time.Second)

	mem := store.NewMemoryStore()
	sc := room.NewScoringCoordinator(scoring.LocalScorer{}, cfg.Round.ScoreTimeout)
	rm := room.NewManager(mem, cfg, sc)
	rm.SetHub(consoleBroadcaster{})

	r := rm.CreateRoom()
	fmt.Printf("room: %s\n", r.ID)

	alice, err := rm.Join(r.ID, "Alice")
	if err != nil {
		panic(err)
	}
	bob, err := rm.Join(r.ID, "Bob")
	if err != nil {
		panic(err)
	}

	if err := rm.Start(r.ID, alice.ID); err != nil {
		panic(err)
	}

	time.Sleep(500 * time.Millisecond)
	_ = rm.Submit(r.ID, alice.ID, "data:image/png;base64,QWxpY2U=")
	_ = rm.Submit(r.ID, bob.ID, "data:image/png;base64,Qm9i")

	// Wait out the round, the grace window and the scoring pass.
	time.Sleep(3 * time.Second)

	info, _ := rm.Info(r.ID)
	js, _ := json.MarshalIndent(info, "", "  ")
	fmt.Println(string(js))
}
