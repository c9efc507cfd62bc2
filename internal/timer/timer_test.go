package timer_test

import (
	"testing"
	"time"

	"github.com/2beens/posecoach/internal/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestTimer_PauseResume(t *testing.T) {
	clock := timer.NewManualClock(t0)
	tm := timer.New(clock)

	assert.Equal(t, time.Duration(0), tm.Active())
	assert.ErrorIs(t, tm.Pause(), timer.ErrNotRunning)

	tm.Start(false)
	clock.Advance(10 * time.Second)
	assert.Equal(t, 10*time.Second, tm.Active())

	require.NoError(t, tm.Pause())
	assert.True(t, tm.Paused())
	assert.ErrorIs(t, tm.Pause(), timer.ErrAlreadyPaused)

	clock.Advance(5 * time.Second)
	// paused time does not count
	assert.Equal(t, 10*time.Second, tm.Active())

	require.NoError(t, tm.Resume())
	assert.ErrorIs(t, tm.Resume(), timer.ErrNotPaused)
	clock.Advance(3 * time.Second)
	assert.Equal(t, 13*time.Second, tm.Active())

	timing := tm.Timing()
	assert.Equal(t, t0, timing.StartedAt)
	assert.Equal(t, 5*time.Second, timing.AccumulatedPaused)
	assert.Nil(t, timing.PauseStartedAt)
}

func TestTimer_ActiveNonDecreasing(t *testing.T) {
	clock := timer.NewManualClock(t0)
	tm := timer.New(clock)
	tm.Start(false)

	last := tm.Active()
	for i := 0; i < 20; i++ {
		clock.Advance(250 * time.Millisecond)
		if i%5 == 0 {
			require.NoError(t, tm.Pause())
			clock.Advance(time.Second)
			require.NoError(t, tm.Resume())
		}
		now := tm.Active()
		require.GreaterOrEqual(t, now, last)
		last = now
	}
	assert.Equal(t, 5*time.Second, last)
}

func TestTimer_Stop(t *testing.T) {
	clock := timer.NewManualClock(t0)
	tm := timer.New(clock)
	tm.Start(false)

	clock.Advance(4 * time.Second)
	require.NoError(t, tm.Pause())
	clock.Advance(2 * time.Second)
	tm.Stop()
	assert.False(t, tm.Running())
	assert.False(t, tm.Paused())

	clock.Advance(time.Minute)
	assert.Equal(t, 4*time.Second, tm.Active())
	assert.ErrorIs(t, tm.Pause(), timer.ErrNotRunning)
}

func TestTimer_Replay(t *testing.T) {
	clock := timer.NewManualClock(t0)
	tm := timer.New(clock)
	tm.Start(true)

	assert.ErrorIs(t, tm.Pause(), timer.ErrPauseUnsupported)
	assert.ErrorIs(t, tm.Resume(), timer.ErrPauseUnsupported)

	clock.Set(t0.Add(1500 * time.Millisecond))
	assert.Equal(t, 1500*time.Millisecond, tm.Active())
	assert.Equal(t, time.Duration(0), tm.Timing().AccumulatedPaused)
}

func TestTimer_StartResets(t *testing.T) {
	clock := timer.NewManualClock(t0)
	tm := timer.New(clock)
	tm.Start(false)
	clock.Advance(time.Minute)
	tm.Stop()

	tm.Start(false)
	assert.True(t, tm.Running())
	assert.Equal(t, time.Duration(0), tm.Active())
}

func TestTiming_Active(t *testing.T) {
	pause := t0.Add(20 * time.Second)
	timing := timer.Timing{
		StartedAt:         t0,
		AccumulatedPaused: 5 * time.Second,
		PauseStartedAt:    &pause,
	}
	// 30s elapsed - 5s accumulated - 10s open pause
	assert.Equal(t, 15*time.Second, timing.Active(t0.Add(30*time.Second)))
	assert.Equal(t, time.Duration(0), timer.Timing{}.Active(t0))
}

func TestSystemClock(t *testing.T) {
	before := time.Now()
	now := timer.SystemClock{}.Now()
	assert.False(t, now.Before(before))
}
