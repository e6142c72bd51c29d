package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr   string
	PublicURL  string
	RedisAddr  string
	ScoringURL string

	ReferenceImages []string

	Round RoundConfig
}

// RoundConfig holds the tunable timing knobs for a round. It is shared
// between the room manager and the config endpoints, so reads and
// updates go through the mutex.
type RoundConfig struct {
	mu sync.RWMutex

	duration     time.Duration
	grace        time.Duration
	scoreTimeout time.Duration
	roomTTL      time.Duration
}

func (rc *RoundConfig) Duration() time.Duration {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.duration
}

func (rc *RoundConfig) Grace() time.Duration {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.grace
}

func (rc *RoundConfig) ScoreTimeout() time.Duration {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.scoreTimeout
}

func (rc *RoundConfig) RoomTTL() time.Duration {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.roomTTL
}

func (rc *RoundConfig) SetRoomTTL(d time.Duration) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.roomTTL = d
}

func (rc *RoundConfig) Update(duration, grace, scoreTimeout time.Duration) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if duration > 0 {
		rc.duration = duration
	}
	if grace > 0 {
		rc.grace = grace
	}
	if scoreTimeout > 0 {
		rc.scoreTimeout = scoreTimeout
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// DefaultReferenceImages is used when REFERENCE_IMAGES is not set.
var DefaultReferenceImages = []string{
	"/images/reference/cat.png",
	"/images/reference/house.png",
	"/images/reference/bicycle.png",
	"/images/reference/rocket.png",
	"/images/reference/fish.png",
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	refs := DefaultReferenceImages
	if v := os.Getenv("REFERENCE_IMAGES"); v != "" {
		refs = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				refs = append(refs, s)
			}
		}
	}

	cfg := &Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		PublicURL:       getenv("PUBLIC_URL", "http://localhost:8080"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		ScoringURL:      os.Getenv("SCORING_URL"),
		ReferenceImages: refs,
	}
	cfg.Round.duration = time.Duration(getenvInt("ROUND_SECONDS", 30)) * time.Second
	cfg.Round.grace = time.Duration(getenvInt("GRACE_MS", 1000)) * time.Millisecond
	cfg.Round.scoreTimeout = time.Duration(getenvInt("SCORE_TIMEOUT_MS", 5000)) * time.Millisecond
	cfg.Round.roomTTL = time.Duration(getenvInt("ROOM_TTL_MIN", 60)) * time.Minute
	return cfg
}
