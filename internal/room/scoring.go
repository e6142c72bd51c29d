package room

import (
	"context"
	"log"
	"time"

	"draw-duel/internal/scoring"
	"draw-duel/internal/shared"
)

// ScoringCoordinator turns a snapshot of submissions into a RoundResult.
// Each similarity call is bounded by the configured timeout; a call that
// fails or times out drops that submission from the scores rather than
// hanging the room.
type ScoringCoordinator struct {
	scorer  scoring.Scorer
	timeout func() time.Duration
}

func NewScoringCoordinator(s scoring.Scorer, timeout func() time.Duration) *ScoringCoordinator {
	return &ScoringCoordinator{scorer: s, timeout: timeout}
}

// ScoreRound scores every present submission against the reference.
// Winner is the strictly highest score; an exact tie, including the
// zero-submitter case, yields no winner.
func (sc *ScoringCoordinator) ScoreRound(referenceImage string, drawings map[string]string) *shared.RoundResult {
	res := &shared.RoundResult{
		Scores:         make(map[string]float64, len(drawings)),
		ReferenceImage: referenceImage,
		Drawings:       drawings,
	}

	for playerID, drawing := range drawings {
		ctx, cancel := context.WithTimeout(context.Background(), sc.timeout())
		score, err := sc.scorer.Score(ctx, referenceImage, drawing)
		cancel()
		if err != nil {
			log.Printf("scoring failed for player %s: %v", playerID, err)
			delete(res.Drawings, playerID)
			continue
		}
		res.Scores[playerID] = score
	}

	res.WinnerID = pickWinner(res.Scores)
	return res
}

// pickWinner returns the player with the strictly highest score, or ""
// when the top score is shared. The no-winner-on-tie outcome is a policy
// decision, not an accident of map iteration order.
func pickWinner(scores map[string]float64) string {
	var winnerID string
	best := -1.0
	tied := false
	for playerID, score := range scores {
		switch {
		case score > best:
			best = score
			winnerID = playerID
			tied = false
		case score == best:
			tied = true
		}
	}
	if tied || winnerID == "" {
		return ""
	}
	return winnerID
}
