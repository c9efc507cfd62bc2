package timer

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrAlreadyPaused    = errors.New("timer already paused")
	ErrNotPaused        = errors.New("timer not paused")
	ErrNotRunning       = errors.New("timer not running")
	ErrPauseUnsupported = errors.New("pause not supported in replay mode")
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock only moves when told to. Replays drive it with media time.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Timing is a snapshot of the timer state.
type Timing struct {
	StartedAt         time.Time     `json:"startedAt"`
	AccumulatedPaused time.Duration `json:"accumulatedPaused"`
	PauseStartedAt    *time.Time    `json:"pauseStartedAt,omitempty"`
	StoppedAt         *time.Time    `json:"stoppedAt,omitempty"`
}

// Active computes the active duration at now.
func (t Timing) Active(now time.Time) time.Duration {
	if t.StartedAt.IsZero() {
		return 0
	}
	if t.StoppedAt != nil {
		now = *t.StoppedAt
	}
	active := now.Sub(t.StartedAt) - t.AccumulatedPaused
	if t.PauseStartedAt != nil {
		active -= now.Sub(*t.PauseStartedAt)
	}
	if active < 0 {
		return 0
	}
	return active
}

// Timer measures active session time across pauses. It is not safe for
// concurrent use; the session controller serializes access.
type Timer struct {
	clock  Clock
	replay bool
	timing Timing
}

func New(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timer{clock: clock}
}

// Start resets the timer and starts measuring. Replay timers never accumulate
// paused time.
func (t *Timer) Start(replay bool) {
	t.replay = replay
	t.timing = Timing{StartedAt: t.clock.Now()}
}

func (t *Timer) Running() bool {
	return !t.timing.StartedAt.IsZero() && t.timing.StoppedAt == nil
}

func (t *Timer) Paused() bool {
	return t.timing.PauseStartedAt != nil
}

func (t *Timer) Pause() error {
	if t.replay {
		return ErrPauseUnsupported
	}
	if !t.Running() {
		return ErrNotRunning
	}
	if t.Paused() {
		return ErrAlreadyPaused
	}
	now := t.clock.Now()
	t.timing.PauseStartedAt = &now
	return nil
}

func (t *Timer) Resume() error {
	if t.replay {
		return ErrPauseUnsupported
	}
	if !t.Paused() {
		return ErrNotPaused
	}
	t.timing.AccumulatedPaused += t.clock.Now().Sub(*t.timing.PauseStartedAt)
	t.timing.PauseStartedAt = nil
	return nil
}

// Stop freezes the active duration. An open pause is closed first.
func (t *Timer) Stop() {
	if !t.Running() {
		return
	}
	if t.Paused() {
		_ = t.Resume()
	}
	now := t.clock.Now()
	t.timing.StoppedAt = &now
}

func (t *Timer) Active() time.Duration {
	return t.timing.Active(t.clock.Now())
}

func (t *Timer) Timing() Timing {
	snapshot := t.timing
	if snapshot.PauseStartedAt != nil {
		p := *snapshot.PauseStartedAt
		snapshot.PauseStartedAt = &p
	}
	if snapshot.StoppedAt != nil {
		s := *snapshot.StoppedAt
		snapshot.StoppedAt = &s
	}
	return snapshot
}
