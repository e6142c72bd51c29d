package http

// JoinGameRequest is the payload for the REST join mirror of the
// join_game socket action.
type JoinGameRequest struct {
	PlayerName string `json:"player_name"`
}

// RoundConfigRequest tunes the round timing knobs. Zero fields are left
// unchanged.
type RoundConfigRequest struct {
	RoundSeconds   int `json:"round_seconds"`
	GraceMs        int `json:"grace_ms"`
	ScoreTimeoutMs int `json:"score_timeout_ms"`
}
