package main

import (
	"log"

	httpapi "draw-duel/internal/api/http"
	"draw-duel/internal/api/ws"
	"draw-duel/internal/archive"
	"draw-duel/internal/config"
	"draw-duel/internal/room"
	"draw-duel/internal/scoring"
	"draw-duel/internal/store"
)

// @title Draw Duel API
// @version 1.0
// @description Room/session coordinator for the two-player drawing game (Go + Gin)
// @BasePath /
func main() {
	cfg := config.Load()
	mem := store.NewMemoryStore()

	var scorer scoring.Scorer = scoring.LocalScorer{}
	if cfg.ScoringURL != "" {
		scorer = scoring.NewHTTPScorer(cfg.ScoringURL)
	}

	sc := room.NewScoringCoordinator(scorer, cfg.Round.ScoreTimeout)
	rm := room.NewManager(mem, cfg, sc)
	hub := ws.NewHub(rm)
	rm.SetHub(hub)

	var arch *archive.ResultArchive
	if cfg.RedisAddr != "" {
		arch = archive.NewResultArchive(cfg.RedisAddr)
		rm.SetResultSink(arch)
		log.Printf("round archive enabled at %s", cfg.RedisAddr)
	}

	stop := make(chan struct{})
	defer close(stop)
	go rm.RunSweeper(stop)

	r := httpapi.NewRouter(rm, cfg, hub, arch)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
