package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/balkashynov/workclock/internal/models"
)

const (
	OpeningLabel = "Balance of the previous month"
	ClosingLabel = "Current Balance"
)

// LineKind tells synthetic balance rows apart from stored sessions
type LineKind int

const (
	LineOpening LineKind = iota
	LineEntry
	LineClosing
)

// Line is one row of the monthly ledger view
type Line struct {
	Time     time.Time
	Duration string
	Notes    string
	Kind     LineKind
}

// Report is the ledger for one active month
type Report struct {
	MonthStart time.Time
	Lines      []Line
	Opening    int64 // seconds recorded before MonthStart
	Balance    int64 // Opening plus every entry
	Entries    int
	Purged     int64
}

// Store is the part of the ledger store the report reads from
type Store interface {
	DeleteNoise(ctx context.Context, low, high int64) (int64, error)
	SumDurationUntil(ctx context.Context, ts int64) (int64, error)
	HasSessionsBefore(ctx context.Context, ts int64) (bool, error)
	QuerySince(ctx context.Context, ts int64) ([]models.WorkSession, error)
}

// Reporter computes monthly reports. Noise is purged before every computation.
type Reporter struct {
	store     Store
	threshold int64
	now       func() time.Time
	log       zerolog.Logger
}

// Option configures a Reporter
type Option func(*Reporter)

// WithNoiseThreshold sets the largest |duration| treated as an accidental click
func WithNoiseThreshold(seconds int64) Option {
	return func(r *Reporter) { r.threshold = seconds }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// WithLogger attaches a logger for purge notices
func WithLogger(l zerolog.Logger) Option {
	return func(r *Reporter) { r.log = l }
}

// NewReporter creates a Reporter over store
func NewReporter(store Store, opts ...Option) *Reporter {
	r := &Reporter{
		store:     store,
		threshold: 120,
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MonthStart returns midnight of day 1 of t's month in t's location
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthBoundaryNotice explains where an entry dated midnight of the 1st ends up
const MonthBoundaryNotice = "Entries at midnight on the 1st sit on the month boundary: " +
	"they are not listed in that month's ledger and count from the next month's carried balance on."

// StartsMonth reports whether t is exactly the start of its month. A session starting
// there is neither before the month nor inside it.
func StartsMonth(t time.Time) bool {
	return t.Equal(MonthStart(t))
}

// PreviousMonthAnchor returns the last instant of the month before now's
func PreviousMonthAnchor(now time.Time) time.Time {
	return MonthStart(now).Add(-time.Nanosecond)
}

// Monthly builds the ledger for the month containing anchor
func (r *Reporter) Monthly(ctx context.Context, anchor time.Time) (*Report, error) {
	monthStart := MonthStart(anchor)
	loc := anchor.Location()
	ts := monthStart.Unix()

	purged, err := r.store.DeleteNoise(ctx, -r.threshold, r.threshold)
	if err != nil {
		return nil, fmt.Errorf("purge noise: %w", err)
	}
	if purged > 0 {
		r.log.Info().Int64("purged", purged).Int64("threshold", r.threshold).Msg("removed short sessions")
	}

	report := &Report{MonthStart: monthStart, Purged: purged}

	opening, err := r.store.SumDurationUntil(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("opening balance: %w", err)
	}
	hasHistory, err := r.store.HasSessionsBefore(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("opening balance: %w", err)
	}
	report.Opening = opening
	if hasHistory {
		report.Lines = append(report.Lines, Line{
			Time:     monthStart,
			Duration: FormatSigned(opening),
			Notes:    OpeningLabel,
			Kind:     LineOpening,
		})
	}

	entries, err := r.store.QuerySince(ctx, ts)
	if err != nil {
		return nil, fmt.Errorf("month entries: %w", err)
	}

	balance := opening
	for _, e := range entries {
		balance += e.Duration
		report.Lines = append(report.Lines, Line{
			Time:     time.Unix(e.Start, 0).In(loc),
			Duration: FormatSigned(e.Duration),
			Notes:    e.Notes,
			Kind:     LineEntry,
		})
	}
	report.Balance = balance
	report.Entries = len(entries)

	if len(entries) > 0 {
		report.Lines = append(report.Lines, Line{
			Time:     r.now().In(loc),
			Duration: FormatSigned(balance),
			Notes:    ClosingLabel,
			Kind:     LineClosing,
		})
	}

	r.log.Debug().
		Time("month", monthStart).
		Int("entries", len(entries)).
		Int64("balance", balance).
		Msg("report computed")

	return report, nil
}
