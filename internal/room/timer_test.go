package room

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoundTimerFiresOnce(t *testing.T) {
	var fired int32
	rt := NewRoundTimer(20*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.Zero(t, rt.Remaining())
}

func TestRoundTimerCancelPreventsFire(t *testing.T) {
	var fired int32
	rt := NewRoundTimer(30*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})
	rt.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fired))
}

func TestRoundTimerNilSafe(t *testing.T) {
	var rt *RoundTimer
	rt.Cancel()
	assert.Zero(t, rt.Remaining())
}

func TestRoundTimerRemaining(t *testing.T) {
	rt := NewRoundTimer(time.Minute, func() {})
	defer rt.Cancel()
	left := rt.Remaining()
	assert.Greater(t, left, 50*time.Second)
	assert.LessOrEqual(t, left, time.Minute)
}
