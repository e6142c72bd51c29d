package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"draw-duel/internal/shared"

	"github.com/redis/go-redis/v9"
)

const recordTTL = 7 * 24 * time.Hour

// ResultArchive persists finished rounds in redis and maintains an
// all-time winners leaderboard. It is optional: when redis is not
// configured the manager simply has no sink, and archival failures are
// logged, never surfaced to a room.
type ResultArchive struct {
	client *redis.Client
}

func NewResultArchive(addr string) *ResultArchive {
	return &ResultArchive{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// LeaderboardEntry is one row of the winners leaderboard.
type LeaderboardEntry struct {
	PlayerName string  `json:"player_name"`
	Wins       float64 `json:"wins"`
	Rank       int     `json:"rank"`
}

func roundKey(roomID string, round int) string {
	return fmt.Sprintf("room:%s:round:%d", roomID, round)
}

// RecordRound stores the round result and bumps the winner's tally.
// Runs off the room's critical path.
func (a *ResultArchive) RecordRound(roomID string, round int, players []shared.Player, res *shared.RoundResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	record := struct {
		Scores   map[string]float64 `json:"scores"`
		WinnerID string             `json:"winner,omitempty"`
		PlayedAt time.Time          `json:"played_at"`
	}{
		Scores:   res.Scores,
		WinnerID: res.WinnerID,
		PlayedAt: time.Now(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		log.Printf("archive: marshal round %s/%d: %v", roomID, round, err)
		return
	}
	if err := a.client.Set(ctx, roundKey(roomID, round), data, recordTTL).Err(); err != nil {
		log.Printf("archive: store round %s/%d: %v", roomID, round, err)
		return
	}

	if res.WinnerID == "" {
		return
	}
	winnerName := res.WinnerID
	for _, p := range players {
		if p.ID == res.WinnerID {
			winnerName = p.Name
			break
		}
	}
	if err := a.client.ZIncrBy(ctx, "leaderboard:wins", 1, winnerName).Err(); err != nil {
		log.Printf("archive: leaderboard update for %s: %v", winnerName, err)
	}
}

// TopWinners returns the highest win counts, best first.
func (a *ResultArchive) TopWinners(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	results, err := a.client.ZRevRangeWithScores(ctx, "leaderboard:wins", 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, len(results))
	for i, z := range results {
		entries[i] = LeaderboardEntry{
			PlayerName: z.Member.(string),
			Wins:       z.Score,
			Rank:       i + 1,
		}
	}
	return entries, nil
}
