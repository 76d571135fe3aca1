package game_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studyforge/backend/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	questions []game.Question
	err       error
	lastLimit int
}

func (f *fakeSource) Load(_ context.Context, _ uint, filter game.Filter) ([]game.Question, error) {
	f.lastLimit = filter.Limit
	return f.questions, f.err
}

func TestManagerCreateAndLookup(t *testing.T) {
	source := &fakeSource{questions: threeQuestions()}
	m := game.NewManager(source, newSinkRecorder(), nil)
	t.Cleanup(m.Close)

	s, err := m.Create(context.Background(), 7, 1, game.Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, game.StateReady, s.Snapshot().State)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	m.Remove(s.ID)
	_, ok = m.Get(s.ID)
	assert.False(t, ok)
	assert.Error(t, s.Start(game.ModePractice), "removed sessions are closed")
}

func TestManagerCreateEmptySubject(t *testing.T) {
	m := game.NewManager(&fakeSource{}, newSinkRecorder(), nil)
	t.Cleanup(m.Close)

	_, err := m.Create(context.Background(), 7, 1, game.Filter{})
	assert.ErrorIs(t, err, game.ErrNoQuestions)
}

func TestManagerCreateStoreUnavailable(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	m := game.NewManager(source, newSinkRecorder(), nil)
	t.Cleanup(m.Close)

	_, err := m.Create(context.Background(), 7, 1, game.Filter{})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, game.ErrNoQuestions)
}

func TestManagerExpiresIdleSessions(t *testing.T) {
	source := &fakeSource{questions: threeQuestions()}
	m := game.NewManager(source, newSinkRecorder(), nil,
		game.WithSessionTTL(20*time.Millisecond),
	)
	t.Cleanup(m.Close)

	s, err := m.Create(context.Background(), 7, 1, game.Filter{})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, ok := m.Get(s.ID)
		return !ok
	}, time.Second, 10*time.Millisecond, "idle session should be swept")
}
