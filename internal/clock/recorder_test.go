package clock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/workclock/internal/models"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type memoryStore struct {
	rows []models.WorkSession
	err  error
}

func (m *memoryStore) Insert(_ context.Context, in models.WorkSessionInput) (*models.WorkSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	row := models.WorkSession{ID: int64(len(m.rows) + 1), Start: in.Start, Duration: in.Duration, Notes: in.Notes}
	m.rows = append(m.rows, row)
	return &row, nil
}

func newTestRecorder() (*Recorder, *fakeClock, *memoryStore) {
	clk := &fakeClock{t: time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)}
	store := &memoryStore{}
	return NewRecorder(store, clk.now), clk, store
}

func TestRecorderFullCycleWithNote(t *testing.T) {
	rec, clk, store := newTestRecorder()
	ctx := context.Background()

	started, err := rec.Start()
	require.NoError(t, err)
	assert.Equal(t, Running, rec.State())

	clk.advance(90*time.Minute + 500*time.Millisecond)
	assert.Equal(t, 90*time.Minute+500*time.Millisecond, rec.Elapsed())

	d, err := rec.Stop()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)
	assert.Equal(t, AwaitingNote, rec.State())

	// time spent typing the note does not count
	clk.advance(10 * time.Minute)
	assert.Equal(t, 90*time.Minute, rec.Elapsed())

	row, err := rec.ProvideNote(ctx, "review")
	require.NoError(t, err)
	assert.Equal(t, Idle, rec.State())
	assert.Equal(t, started.Unix(), row.Start)
	assert.Equal(t, int64(5400), row.Duration)
	assert.Equal(t, "review", row.Notes)
	assert.Len(t, store.rows, 1)
}

func TestRecorderDeclinedNoteStillRecords(t *testing.T) {
	rec, clk, store := newTestRecorder()

	_, err := rec.Start()
	require.NoError(t, err)
	clk.advance(time.Hour)
	_, err = rec.Stop()
	require.NoError(t, err)

	pending, ok := rec.Pending()
	require.True(t, ok)
	assert.Equal(t, int64(3600), pending.Duration)

	row, err := rec.DeclineNote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", row.Notes)
	assert.Equal(t, Idle, rec.State())
	assert.Len(t, store.rows, 1)
}

func TestRecorderIsRestartable(t *testing.T) {
	rec, clk, store := newTestRecorder()
	for i := 0; i < 3; i++ {
		_, err := rec.Start()
		require.NoError(t, err)
		clk.advance(time.Hour)
		_, err = rec.Stop()
		require.NoError(t, err)
		_, err = rec.DeclineNote(context.Background())
		require.NoError(t, err)
	}
	assert.Len(t, store.rows, 3)
}

func TestRecorderRejectsOutOfOrderCalls(t *testing.T) {
	rec, _, _ := newTestRecorder()
	ctx := context.Background()

	_, err := rec.Stop()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = rec.ProvideNote(ctx, "x")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, rec.Cancel(), ErrInvalidTransition)

	_, err = rec.Start()
	require.NoError(t, err)
	_, err = rec.Start()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = rec.DeclineNote(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRecorderCancelDropsSession(t *testing.T) {
	rec, clk, store := newTestRecorder()
	_, err := rec.Start()
	require.NoError(t, err)
	clk.advance(time.Hour)

	require.NoError(t, rec.Cancel())
	assert.Equal(t, Idle, rec.State())
	assert.Zero(t, rec.Elapsed())
	assert.Empty(t, store.rows)
}

func TestRecorderClockGoingBackwardsGivesZero(t *testing.T) {
	rec, clk, _ := newTestRecorder()
	_, err := rec.Start()
	require.NoError(t, err)
	clk.advance(-time.Minute)

	d, err := rec.Stop()
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestRecorderStorageFailureStillReturnsToIdle(t *testing.T) {
	rec, clk, store := newTestRecorder()
	store.err = errors.New("disk full")

	_, err := rec.Start()
	require.NoError(t, err)
	clk.advance(time.Hour)
	_, err = rec.Stop()
	require.NoError(t, err)

	_, err = rec.ProvideNote(context.Background(), "lost")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.err)
	assert.Equal(t, Idle, rec.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "awaiting note", AwaitingNote.String())
	assert.Equal(t, "unknown", State(42).String())
}
