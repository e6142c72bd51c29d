package room

import (
	"sync"
	"time"
)

// RoundTimer is the authoritative countdown for a single active round.
// It fires its callback exactly once; duplicate fires and fire-after-cancel
// are swallowed by the once guard. Client-side timers are advisory only.
type RoundTimer struct {
	once     sync.Once
	timer    *time.Timer
	deadline time.Time
}

func NewRoundTimer(d time.Duration, fire func()) *RoundTimer {
	rt := &RoundTimer{deadline: time.Now().Add(d)}
	rt.timer = time.AfterFunc(d, func() {
		rt.once.Do(fire)
	})
	return rt
}

// Remaining reports the time left until expiry, clamped at zero.
func (rt *RoundTimer) Remaining() time.Duration {
	if rt == nil {
		return 0
	}
	if left := time.Until(rt.deadline); left > 0 {
		return left
	}
	return 0
}

// Cancel discards the timer. Used on room teardown only; a single
// player's action never cancels a running round. A fire that already
// started is not waited for here; the phase guards make it a no-op.
func (rt *RoundTimer) Cancel() {
	if rt == nil {
		return
	}
	rt.timer.Stop()
}
