package http

import (
	"net/http"
	"time"

	"draw-duel/internal/config"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// @Summary Get round timing config
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/config/round [get]
func (h *ConfigHandler) GetRoundConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"round_seconds":    int(h.cfg.Round.Duration().Seconds()),
		"grace_ms":         h.cfg.Round.Grace().Milliseconds(),
		"score_timeout_ms": h.cfg.Round.ScoreTimeout().Milliseconds(),
	})
}

// @Summary Update round timing config
// @Description Applies to rounds started after the update; a running timer is never changed
// @Tags Config
// @Accept json
// @Produce json
// @Param request body RoundConfigRequest true "Timing knobs"
// @Success 200 {object} map[string]interface{}
// @Router /api/config/round [post]
func (h *ConfigHandler) UpdateRoundConfigHandler(c *gin.Context) {
	var req RoundConfigRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	h.cfg.Round.Update(
		time.Duration(req.RoundSeconds)*time.Second,
		time.Duration(req.GraceMs)*time.Millisecond,
		time.Duration(req.ScoreTimeoutMs)*time.Millisecond,
	)
	h.GetRoundConfigHandler(c)
}
