package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneQuestion() []Question {
	return []Question{{ID: 1, Text: "q", CorrectAnswer: "A", Points: 10}}
}

func TestForeignClockTickDropped(t *testing.T) {
	s := NewSession("clock", 7, 1, oneQuestion(), nil,
		WithAdvanceDelay(0),
		WithTickInterval(0),
	)
	t.Cleanup(s.Close)
	require.NoError(t, s.Start(ModeTimed))

	// A tick from a channel that is not the session's current clock
	// must not touch the countdown.
	s.clockTick(make(chan struct{}))
	assert.Equal(t, TimedBudgetSeconds, s.Snapshot().TimeRemaining)

	// The caller-driven path still counts.
	s.Tick()
	assert.Equal(t, TimedBudgetSeconds-1, s.Snapshot().TimeRemaining)
}

func TestRestartedRunIgnoresOldClock(t *testing.T) {
	// Long interval: the real clock goroutines never fire here, the
	// test delivers their ticks by hand.
	s := NewSession("clock-restart", 7, 1, oneQuestion(), nil,
		WithAdvanceDelay(0),
		WithTickInterval(time.Hour),
	)
	t.Cleanup(s.Close)

	require.NoError(t, s.Start(ModeTimed))
	s.mu.Lock()
	oldStop := s.tickStop
	s.mu.Unlock()

	s.End()
	s.Reset()
	require.NoError(t, s.Start(ModeTimed))

	// The first run's clock was stopped, but its goroutine may have
	// been mid-tick when the restart happened. Its late tick must not
	// shave a second off the fresh budget.
	s.clockTick(oldStop)
	assert.Equal(t, TimedBudgetSeconds, s.Snapshot().TimeRemaining)

	// The fresh run's own clock still works.
	s.mu.Lock()
	newStop := s.tickStop
	s.mu.Unlock()
	s.clockTick(newStop)
	assert.Equal(t, TimedBudgetSeconds-1, s.Snapshot().TimeRemaining)
}
