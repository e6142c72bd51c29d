package http

import (
	"errors"
	"net/http"

	"draw-duel/internal/archive"
	"draw-duel/internal/config"
	"draw-duel/internal/room"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, room.ErrRoomFull), errors.Is(err, room.ErrInvalidTransition), errors.Is(err, room.ErrRoundClosed):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// @Summary Create new game
// @Description Create an empty game room; the first player to join becomes the creator
// @Tags Game
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/create-game [post]
func CreateGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := rm.CreateRoom()
		c.JSON(http.StatusOK, gin.H{"game_id": r.ID})
	}
}

// @Summary Get game info
// @Description Synchronous room snapshot; reconnecting clients use this to resync
// @Tags Game
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} shared.RoomInfo
// @Router /api/game/{id} [get]
func GameInfoHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := rm.Info(c.Param("id"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// @Summary Join a game
// @Description Adds a player to a waiting room and returns the assigned player id
// @Tags Game
// @Accept json
// @Produce json
// @Param id path string true "Game ID"
// @Param request body JoinGameRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/game/{id}/join [post]
func JoinGameHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinGameRequest
		if err := c.BindJSON(&req); err != nil || req.PlayerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_name required"})
			return
		}
		p, err := rm.Join(c.Param("id"), req.PlayerName)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"player_id": p.ID})
	}
}

// @Summary Join link QR code
// @Description PNG QR code encoding the public join URL for the game
// @Tags Game
// @Produce png
// @Param id path string true "Game ID"
// @Success 200 {file} binary
// @Router /api/game/{id}/qr [get]
func QRHandler(rm *room.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := rm.Info(id); err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		png, err := qrcode.Encode(cfg.PublicURL+"/game/"+id, qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode QR code"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}

// @Summary Winners leaderboard
// @Description All-time win counts, best first; requires the redis archive
// @Tags Game
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/leaderboard [get]
func LeaderboardHandler(arch *archive.ResultArchive) gin.HandlerFunc {
	return func(c *gin.Context) {
		if arch == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "leaderboard not configured"})
			return
		}
		entries, err := arch.TopWinners(c.Request.Context(), 10)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
	}
}

// @Summary Health check
// @Tags Ops
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
