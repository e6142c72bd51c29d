package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickWinner(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]float64
		want   string
	}{
		{"empty", map[string]float64{}, ""},
		{"single", map[string]float64{"a": 40}, "a"},
		{"single zero score", map[string]float64{"a": 0}, "a"},
		{"clear winner", map[string]float64{"a": 40, "b": 70}, "b"},
		{"exact tie", map[string]float64{"a": 55, "b": 55}, ""},
		{"three way with winner", map[string]float64{"a": 10, "b": 10, "c": 20}, "c"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pickWinner(tc.scores))
		})
	}
}

type failingScorer struct {
	fail map[string]bool
}

func (s failingScorer) Score(_ context.Context, _ string, drawing string) (float64, error) {
	if s.fail[drawing] {
		return 0, errors.New("similarity service unavailable")
	}
	return 42, nil
}

func TestScoreRoundDropsFailedSubmissions(t *testing.T) {
	sc := NewScoringCoordinator(failingScorer{fail: map[string]bool{"broken": true}}, func() time.Duration {
		return time.Second
	})

	res := sc.ScoreRound("/ref/a.png", map[string]string{
		"p1": "fine",
		"p2": "broken",
	})

	require.NotNil(t, res)
	assert.Equal(t, "/ref/a.png", res.ReferenceImage)
	assert.Len(t, res.Scores, 1)
	assert.Equal(t, 42.0, res.Scores["p1"])
	assert.NotContains(t, res.Drawings, "p2", "unscorable drawing excluded from result")
	assert.Equal(t, "p1", res.WinnerID)
}

type slowScorer struct{}

func (slowScorer) Score(ctx context.Context, _, _ string) (float64, error) {
	select {
	case <-time.After(time.Second):
		return 99, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func TestScoreRoundBoundedByTimeout(t *testing.T) {
	sc := NewScoringCoordinator(slowScorer{}, func() time.Duration {
		return 20 * time.Millisecond
	})

	start := time.Now()
	res := sc.ScoreRound("/ref/a.png", map[string]string{"p1": "d1"})
	assert.Less(t, time.Since(start), 500*time.Millisecond, "room must not hang on a slow scorer")
	assert.Empty(t, res.Scores)
	assert.Empty(t, res.WinnerID)
}

func TestScoreRoundEmpty(t *testing.T) {
	sc := NewScoringCoordinator(failingScorer{}, func() time.Duration { return time.Second })
	res := sc.ScoreRound("/ref/a.png", map[string]string{})
	assert.Empty(t, res.Scores)
	assert.Empty(t, res.WinnerID)
	assert.Empty(t, res.Drawings)
}
