package http

import (
	"draw-duel/internal/api/ws"
	"draw-duel/internal/archive"
	"draw-duel/internal/config"
	"draw-duel/internal/room"

	"github.com/gin-gonic/gin"
)

func NewRouter(rm *room.Manager, cfg *config.Config, hub *ws.Hub, arch *archive.ResultArchive) *gin.Engine {
	r := gin.Default()

	// WebSocket for room events
	r.GET("/ws", hub.HandleWS)

	// --- GAME ENDPOINTS ---
	r.POST("/api/create-game", CreateGameHandler(rm))
	r.GET("/api/game/:id", GameInfoHandler(rm))
	r.POST("/api/game/:id/join", JoinGameHandler(rm))
	r.GET("/api/game/:id/qr", QRHandler(rm, cfg))
	r.GET("/api/leaderboard", LeaderboardHandler(arch))

	// --- CONFIG ENDPOINTS ---
	ch := NewConfigHandler(cfg)
	r.GET("/api/config/round", ch.GetRoundConfigHandler)
	r.POST("/api/config/round", ch.UpdateRoundConfigHandler)

	r.GET("/health", HealthHandler())

	return r
}
