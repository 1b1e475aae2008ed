package clock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/balkashynov/workclock/internal/models"
)

// State of a Recorder
type State int

const (
	Idle State = iota
	Running
	AwaitingNote
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case AwaitingNote:
		return "awaiting note"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when a call does not fit the current state
var ErrInvalidTransition = errors.New("invalid recorder transition")

// Inserter persists finished sessions
type Inserter interface {
	Insert(ctx context.Context, in models.WorkSessionInput) (*models.WorkSession, error)
}

// Recorder drives one clock: Idle -> Running -> AwaitingNote -> Idle, as often as needed
type Recorder struct {
	store Inserter
	now   func() time.Time

	state     State
	startedAt time.Time
	duration  int64
}

// NewRecorder creates an idle recorder. A nil now means time.Now.
func NewRecorder(store Inserter, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{store: store, now: now}
}

// State returns the current state
func (r *Recorder) State() State {
	return r.state
}

// StartedAt returns when the current session began; zero when idle
func (r *Recorder) StartedAt() time.Time {
	return r.startedAt
}

// Elapsed returns the running time, or the frozen duration once stopped
func (r *Recorder) Elapsed() time.Duration {
	switch r.state {
	case Running:
		return elapsed(r.startedAt, r.now())
	case AwaitingNote:
		return time.Duration(r.duration) * time.Second
	default:
		return 0
	}
}

// Start begins a session
func (r *Recorder) Start() (time.Time, error) {
	if r.state != Idle {
		return time.Time{}, fmt.Errorf("start while %s: %w", r.state, ErrInvalidTransition)
	}
	r.startedAt = r.now()
	r.duration = 0
	r.state = Running
	return r.startedAt, nil
}

// Stop freezes the duration and waits for a note
func (r *Recorder) Stop() (time.Duration, error) {
	if r.state != Running {
		return 0, fmt.Errorf("stop while %s: %w", r.state, ErrInvalidTransition)
	}
	d := elapsed(r.startedAt, r.now())
	r.duration = int64(d / time.Second)
	r.state = AwaitingNote
	return time.Duration(r.duration) * time.Second, nil
}

// Cancel drops a running session without recording it
func (r *Recorder) Cancel() error {
	if r.state != Running {
		return fmt.Errorf("cancel while %s: %w", r.state, ErrInvalidTransition)
	}
	r.reset()
	return nil
}

// ProvideNote records the stopped session with text as its notes
func (r *Recorder) ProvideNote(ctx context.Context, text string) (*models.WorkSession, error) {
	return r.finish(ctx, text)
}

// DeclineNote records the stopped session with empty notes
func (r *Recorder) DeclineNote(ctx context.Context) (*models.WorkSession, error) {
	return r.finish(ctx, "")
}

// Pending returns the session that would be recorded by the next note call
func (r *Recorder) Pending() (models.WorkSessionInput, bool) {
	if r.state != AwaitingNote {
		return models.WorkSessionInput{}, false
	}
	return models.WorkSessionInput{Start: r.startedAt.Unix(), Duration: r.duration}, true
}

// finish always returns the recorder to Idle, even when the insert fails
func (r *Recorder) finish(ctx context.Context, notes string) (*models.WorkSession, error) {
	if r.state != AwaitingNote {
		return nil, fmt.Errorf("note while %s: %w", r.state, ErrInvalidTransition)
	}
	in := models.WorkSessionInput{
		Start:    r.startedAt.Unix(),
		Duration: r.duration,
		Notes:    notes,
	}
	r.reset()

	row, err := r.store.Insert(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	return row, nil
}

func (r *Recorder) reset() {
	r.state = Idle
	r.startedAt = time.Time{}
	r.duration = 0
}

func elapsed(from, to time.Time) time.Duration {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return d
}
