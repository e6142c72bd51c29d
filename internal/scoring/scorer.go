package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
)

// Scorer rates how closely a drawing matches the round's reference image.
// Scores are in [0,100]. The similarity algorithm itself lives behind this
// interface; the coordinator only needs the number.
type Scorer interface {
	Score(ctx context.Context, referenceImage, drawing string) (float64, error)
}

// HTTPScorer calls an external similarity service. The request carries the
// reference and the drawing, the response carries the score.
type HTTPScorer struct {
	URL    string
	Client *http.Client
}

func NewHTTPScorer(url string) *HTTPScorer {
	return &HTTPScorer{URL: url, Client: http.DefaultClient}
}

func (s *HTTPScorer) Score(ctx context.Context, referenceImage, drawing string) (float64, error) {
	body, err := json.Marshal(map[string]string{
		"reference_image": referenceImage,
		"drawing":         drawing,
	})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scoring service returned %d", resp.StatusCode)
	}

	var out struct {
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return clamp(out.Score), nil
}

// LocalScorer is the stand-in used when no scoring service is configured.
// It derives a stable pseudo-score from the payload so that rounds still
// complete with deterministic, repeatable results.
type LocalScorer struct{}

func (LocalScorer) Score(_ context.Context, referenceImage, drawing string) (float64, error) {
	h := fnv.New32a()
	h.Write([]byte(referenceImage))
	h.Write([]byte{0})
	h.Write([]byte(drawing))
	return float64(h.Sum32()%10001) / 100, nil
}

func clamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
