package emu

import "time"

// Clock is the host time source used by Limiter.
type Clock interface {
	// NowMillis is a monotonic millisecond counter.
	NowMillis() int64
	Sleep(ms int64)
}

type systemClock struct{ start time.Time }

// SystemClock returns a Clock backed by the runtime's monotonic clock.
func SystemClock() Clock { return &systemClock{start: time.Now()} }

func (c *systemClock) NowMillis() int64 { return time.Since(c.start).Milliseconds() }
func (c *systemClock) Sleep(ms int64)   { time.Sleep(time.Duration(ms) * time.Millisecond) }

// maxLagFrames is how far behind the limiter lets the emulator fall before it
// gives up catching up and re-anchors on the current time.
const maxLagFrames = 5

// Limiter paces frames to a fixed rate. Deadlines are computed from the
// anchor and the frame count, so rounding of 1000/fps never accumulates.
type Limiter struct {
	clock  Clock
	fps    int64
	anchor int64
	frames int64
}

func NewLimiter(fps int, clock Clock) *Limiter {
	return &Limiter{clock: clock, fps: int64(fps), anchor: clock.NowMillis()}
}

// Wait blocks until the end of the current frame slot.
func (l *Limiter) Wait() {
	l.frames++
	deadline := l.anchor + l.frames*1000/l.fps
	now := l.clock.NowMillis()
	switch {
	case now < deadline:
		l.clock.Sleep(deadline - now)
	case now-deadline > maxLagFrames*1000/l.fps:
		l.anchor = now
		l.frames = 0
	}
}
